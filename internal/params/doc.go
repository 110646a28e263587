// Package params holds the normalized parameter records handed to the cycle
// topology and the Builder that derives them from raw configuration.
//
// The Builder is a pure mapping. It fills unset optional fields with neutral
// values (zero for pressure drops and efficiencies unless a record documents
// otherwise) and never infers a physical value that depends on the engine
// architecture; that inference belongs to the cycle assembler.
package params
