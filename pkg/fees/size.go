package fees

// Rough v2 transaction sizes in bytes. An input carries its parent element
// with a state proof, the unlock conditions and one signature.
const (
	TxBaseSize = 100
	InputSize  = 800
	OutputSize = 56
)

// EstimateTxSize provides a rough estimate of transaction size in bytes.
func EstimateTxSize(numInputs, numOutputs int) uint64 {
	return TxBaseSize + uint64(numInputs)*InputSize + uint64(numOutputs)*OutputSize
}
