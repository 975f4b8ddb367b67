package asset

import (
	"encoding/binary"
	"regexp"
	"strings"

	"github.com/iotaledger/hive.go/stringify"

	"github.com/proximax-storage/sirius-client-go/packages/crypto"
	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
	"github.com/proximax-storage/sirius-client-go/packages/types"
)

const (
	// MaxNamespaceDepth is the maximum amount of parts of a namespace path.
	MaxNamespaceDepth = 3

	// MaxNamespaceNameLength is the maximum length of a single namespace part.
	MaxNamespaceNameLength = 64
)

var namespaceNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9\-_]*$`)

// region NamespaceID //////////////////////////////////////////////////////////////////////////////////////////////////

// NamespaceID identifies a namespace. Its top bit is always 1.
type NamespaceID struct {
	id types.Uint64
}

// EmptyNamespaceID is the parent of every root namespace.
var EmptyNamespaceID = &NamespaceID{}

// NewNamespaceID wraps an existing namespace id value.
func NewNamespaceID(id types.Uint64) (*NamespaceID, error) {
	if !id.TopBit() {
		return nil, sdkerrors.InvalidNamespace("namespace id %s does not have the namespace bit set", id.Hex())
	}

	return &NamespaceID{id: id}, nil
}

// NamespaceIDFromHex parses the hex form of a namespace id.
func NamespaceIDFromHex(hexString string) (*NamespaceID, error) {
	id, err := types.Uint64FromHex(hexString)
	if err != nil {
		return nil, err
	}

	return NewNamespaceID(id)
}

// NamespaceIDFromName derives the id of a dotted namespace path such as "prx.xpx".
func NamespaceIDFromName(path string) (*NamespaceID, error) {
	ids, err := GenerateNamespacePath(path)
	if err != nil {
		return nil, err
	}

	return ids[len(ids)-1], nil
}

// NamespaceIDFromNameAndParent derives the id of a single namespace part below parent. Root namespaces use
// EmptyNamespaceID as parent.
func NamespaceIDFromNameAndParent(name string, parent *NamespaceID) (*NamespaceID, error) {
	if err := ValidateNamespaceName(name); err != nil {
		return nil, err
	}

	return namespaceIDFromNameAndParent(name, parent), nil
}

// GenerateNamespacePath returns the ids of every level of a dotted path, starting with the root.
func GenerateNamespacePath(path string) ([]*NamespaceID, error) {
	parts := strings.Split(path, ".")
	if len(parts) > MaxNamespaceDepth {
		return nil, sdkerrors.InvalidNamespace("too many parts in %q (max %d)", path, MaxNamespaceDepth)
	}

	ids := make([]*NamespaceID, 0, len(parts))
	parent := EmptyNamespaceID
	for _, part := range parts {
		if err := ValidateNamespaceName(part); err != nil {
			return nil, err
		}

		parent = namespaceIDFromNameAndParent(part, parent)
		ids = append(ids, parent)
	}

	return ids, nil
}

// ValidateNamespaceName checks a single namespace part.
func ValidateNamespaceName(name string) error {
	switch {
	case len(name) == 0:
		return sdkerrors.InvalidNamespace("empty part")
	case len(name) > MaxNamespaceNameLength:
		return sdkerrors.InvalidNamespace("part %q is longer than %d characters", name, MaxNamespaceNameLength)
	case !namespaceNamePattern.MatchString(name):
		return sdkerrors.InvalidNamespace("part %q contains invalid characters", name)
	}

	return nil
}

// namespaceIDFromNameAndParent hashes the 8 little-endian bytes of parent with name and forces the top bit.
func namespaceIDFromNameAndParent(name string, parent *NamespaceID) *NamespaceID {
	digest := crypto.SHA3256(parent.id.Bytes(), []byte(name))

	return &NamespaceID{id: types.NewUint64(binary.LittleEndian.Uint64(digest[:8]) | topBit)}
}

// Type returns NamespaceIDType.
func (n *NamespaceID) Type() AssetIDType {
	return NamespaceIDType
}

// ID returns the identifier value.
func (n *NamespaceID) ID() types.Uint64 {
	return n.id
}

// IsEmpty reports whether the id is zero (no parent).
func (n *NamespaceID) IsEmpty() bool {
	return n.id.IsZero()
}

// Equal reports whether both ids are the same.
func (n *NamespaceID) Equal(other *NamespaceID) bool {
	return n.id.Equal(other.id)
}

// String returns a human-readable version of the NamespaceID.
func (n *NamespaceID) String() string {
	return stringify.Struct("NamespaceID",
		stringify.StructField("id", n.id.Hex()),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
