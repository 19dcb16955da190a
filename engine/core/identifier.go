package core

import "github.com/google/uuid"

// Identifier names a long lived engine object such as an asset handle or a
// load request.
type Identifier string

// NewIdentifier returns a fresh random identifier.
func NewIdentifier() Identifier {
	return Identifier(uuid.NewString())
}

// ParseIdentifier validates s as an identifier produced by NewIdentifier.
func ParseIdentifier(s string) (Identifier, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return Identifier(id.String()), nil
}

func (id Identifier) String() string {
	return string(id)
}

// Short is the first block of the identifier, used in log lines.
func (id Identifier) Short() string {
	if len(id) < 8 {
		return string(id)
	}
	return string(id[:8])
}
