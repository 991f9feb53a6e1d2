// Package credentials holds the static demo login list.
package credentials

// Store maps usernames to plaintext passwords. It is read-only after New.
type Store struct {
	users map[string]string
}

func New(users map[string]string) *Store {
	cp := make(map[string]string, len(users))
	for name, pw := range users {
		cp[name] = pw
	}
	return &Store{users: cp}
}

// Check reports whether username exists and its password matches exactly.
func (s *Store) Check(username, password string) bool {
	pw, ok := s.users[username]
	return ok && pw == password
}

func (s *Store) Len() int {
	return len(s.users)
}
