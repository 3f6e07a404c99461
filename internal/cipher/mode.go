package cipher

// Mode selects the direction of a transform.
//
//go:generate go tool enumer -type=Mode -trimprefix=Mode
type Mode int

const (
	ModeEncrypt Mode = iota
	ModeDecrypt
)
