package store

// Repositories groups every repository bound to the same [Querier], so a
// service can use several of them inside one transaction.
type Repositories struct {
	Users     UserRepository
	Sessions  SessionRepository
	Passwords PasswordRepository
}

// NewRepositories binds all repositories to q.
func NewRepositories(q Querier) *Repositories {
	return &Repositories{
		Users:     &userRepository{db: q},
		Sessions:  &sessionRepository{db: q},
		Passwords: &passwordRepository{db: q},
	}
}
