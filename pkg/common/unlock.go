package common

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

const (
	leafHashPrefix = 0x00
	nodeHashPrefix = 0x01
)

// specifierEd25519 is the 16-byte algorithm tag of an ed25519 unlock key.
var specifierEd25519 = [16]byte{'e', 'd', '2', '5', '5', '1', '9'}

// UnlockConditions lists the keys and signature threshold that control an
// address. The tool only produces single-key conditions with no timelock.
type UnlockConditions struct {
	Timelock           uint64      `json:"timelock"`
	PublicKeys         []PublicKey `json:"publicKeys"`
	SignaturesRequired uint64      `json:"signaturesRequired"`
}

// StandardUnlockConditions returns the conditions of a standard wallet
// address: one key, one required signature, no timelock.
func StandardUnlockConditions(pk PublicKey) UnlockConditions {
	return UnlockConditions{
		Timelock:           0,
		PublicKeys:         []PublicKey{pk},
		SignaturesRequired: 1,
	}
}

// StandardAddress returns the address owned by pk.
func StandardAddress(pk PublicKey) Address {
	return StandardUnlockConditions(pk).UnlockHash()
}

// UnlockHash is the Merkle root of the timelock, each encoded public key and
// the signature count.
func (uc UnlockConditions) UnlockHash() Address {
	leaves := make([][32]byte, 0, len(uc.PublicKeys)+2)
	leaves = append(leaves, leafHash(binary.LittleEndian.AppendUint64(nil, uc.Timelock)))
	for _, pk := range uc.PublicKeys {
		leaves = append(leaves, leafHash(encodeUnlockKey(pk)))
	}
	leaves = append(leaves, leafHash(binary.LittleEndian.AppendUint64(nil, uc.SignaturesRequired)))
	return Address(merkleRoot(leaves))
}

func encodeUnlockKey(pk PublicKey) []byte {
	b := make([]byte, 0, len(specifierEd25519)+8+len(pk))
	b = append(b, specifierEd25519[:]...)
	b = binary.LittleEndian.AppendUint64(b, uint64(len(pk)))
	return append(b, pk[:]...)
}

func leafHash(data []byte) [32]byte {
	return blake2b.Sum256(append([]byte{leafHashPrefix}, data...))
}

func nodeHash(left, right [32]byte) [32]byte {
	buf := make([]byte, 0, 1+64)
	buf = append(buf, nodeHashPrefix)
	buf = append(buf, left[:]...)
	buf = append(buf, right[:]...)
	return blake2b.Sum256(buf)
}

// merkleRoot folds leaves the way an append-only accumulator does: equal
// height subtrees are joined left to right, then the remaining roots are
// joined from the smallest upwards.
func merkleRoot(leaves [][32]byte) [32]byte {
	var trees [64][32]byte
	var has [64]bool
	for _, h := range leaves {
		i := 0
		for ; has[i]; i++ {
			h = nodeHash(trees[i], h)
			has[i] = false
		}
		trees[i], has[i] = h, true
	}
	var root [32]byte
	found := false
	for i := range trees {
		if !has[i] {
			continue
		}
		if !found {
			root, found = trees[i], true
			continue
		}
		root = nodeHash(trees[i], root)
	}
	return root
}

// SpendPolicy wraps the unlock conditions attached to an input.
type SpendPolicy struct {
	Type             string           `json:"type"`
	UnlockConditions UnlockConditions `json:"policy"`
}

// PolicyTypeUnlockConditions is the policy tag for UnlockConditions.
const PolicyTypeUnlockConditions = "uc"

// SatisfiedPolicy is a spend policy together with the signatures and
// preimages that satisfy it.
type SatisfiedPolicy struct {
	Policy     SpendPolicy `json:"policy"`
	Signatures []string    `json:"signatures"`
	Preimages  []string    `json:"preimages,omitempty"`
}
