// Package directory holds the static allow-list of shareholders that are
// permitted to authenticate. The directory is a coarse gate only: the user
// store remains the authoritative source of profile data and numeric IDs.
package directory

// Identity is a single allow-listed principal. Identities are compiled into
// the running process and never persisted or mutated.
type Identity struct {
	Email    string
	Phone    string
	FullName string
}

// Directory answers whether an identifier belongs to an allow-listed identity.
type Directory struct {
	identities []Identity
}

// New creates a Directory over a fixed set of identities.
func New(identities ...Identity) *Directory {
	return &Directory{identities: identities}
}

// IsAuthorized reports whether identifier matches the email or phone of any
// allow-listed identity. Matching is case-sensitive; absence is a normal
// false result, never an error.
func (d *Directory) IsAuthorized(identifier string) bool {
	for _, identity := range d.identities {
		if identity.Email == identifier || identity.Phone == identifier {
			return true
		}
	}
	return false
}

// Identities returns a copy of the allow-list.
func (d *Directory) Identities() []Identity {
	out := make([]Identity, len(d.identities))
	copy(out, d.identities)
	return out
}

// Semdex returns the production shareholder allow-list.
func Semdex() *Directory {
	return New(
		Identity{
			Email:    "pbernardproxy@gmail.com",
			Phone:    "+230 54557219",
			FullName: "Patrick Ian Bernard",
		},
		Identity{
			Email:    "audrey.l.brutus@gmail.com",
			Phone:    "+230 54951814",
			FullName: "Marie Audrey Laura Brutus",
		},
	)
}
