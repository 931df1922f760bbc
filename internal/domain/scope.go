package domain

// Scope restricts news queries to one author; an empty AuthorID means every author
type Scope struct {
	AuthorID string
}

// ScopeAll covers every news record
func ScopeAll() Scope { return Scope{} }

// ScopeAuthor covers only records written by authorID
func ScopeAuthor(authorID string) Scope { return Scope{AuthorID: authorID} }

// ScopeFor derives the visibility scope of an identity: admins see everything, writers their own
func ScopeFor(id Identity) Scope {
	if id.IsAdmin() {
		return ScopeAll()
	}
	return ScopeAuthor(id.ID)
}

// All reports whether the scope is unrestricted
func (s Scope) All() bool { return s.AuthorID == "" }
