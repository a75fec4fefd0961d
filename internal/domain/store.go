package domain

// Store 聚合所有存储接口
type Store interface {
	// ========== Email Repository ==========
	SaveEmail(email *Email) error
	GetEmail(id string) (*Email, error)
	ListEmailsByIDs(ids []string) ([]Email, error)
	SearchEmails(criteria EmailSearchCriteria) (*EmailSearchResult, error)
	ListEmailTypes() ([]string, error)

	// ========== Comment Repository ==========
	CreateComment(comment *Comment) error
	GetComment(id int) (*Comment, error)
	ListCommentsByEmail(emailID string) ([]Comment, error)
	CountCommentsByEmail(emailID string) (int, error)

	// ========== Activity Repository ==========
	AppendActivity(activity *UserActivity) error
	SearchActivities(criteria ActivitySearchCriteria) (*ActivitySearchResult, error)

	// ========== User Repository ==========
	CreateUser(user *User) error
	GetUserByID(id string) (*User, error)
	GetUserByUsername(username string) (*User, error)
	UpdateUser(user *User) error
	UpdateLastLogin(userID string) error
	ListUsers() ([]User, error)
}
