package sim

import (
	"context"
	"strings"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// Identity is a placeholder decentralized identity. None of these values are
// real key material.
type Identity struct {
	DID        string `json:"did"`
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

// IdentityGenerator creates identities.
type IdentityGenerator interface {
	Generate(ctx context.Context) (Identity, error)
}

// MockIdentities produces random base36 identifiers.
type MockIdentities struct {
	Engine *Engine
}

func (g MockIdentities) Generate(ctx context.Context) (Identity, error) {
	if err := ctx.Err(); err != nil {
		return Identity{}, err
	}
	priv := "priv_key_" + g.randomBase36(64)
	pub := "pub_key_" + g.randomBase36(64)
	return Identity{
		DID:        "did:aegis:" + pub[8:24],
		PublicKey:  pub,
		PrivateKey: priv,
	}, nil
}

func (g MockIdentities) randomBase36(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(base36[g.Engine.IntN(len(base36))])
	}
	return b.String()
}
