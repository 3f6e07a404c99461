package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/robalyx/cipherlab/internal/cipher"
)

// LastInputKey is the fixed identifier the last entered input is stored under.
const LastInputKey = "caesarCipherInput"

// HistoryEntry records one completed encrypt or decrypt operation.
type HistoryEntry struct {
	ID           uuid.UUID         `json:"id"`
	Mode         cipher.Mode       `json:"mode"`
	Alphabet     cipher.AlphabetID `json:"alphabet"`
	AppliedShift int               `json:"appliedShift"`
	Characters   int               `json:"characters"`
	Preview      string            `json:"preview"`
	CreatedAt    time.Time         `json:"createdAt"`
}
