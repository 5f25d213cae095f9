package client

import "time"

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterInput struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar,omitempty"`
}

type CreateUserInput struct {
	RegisterInput
	IsAdmin *bool `json:"isAdmin,omitempty"`
}

type UserUpdate struct {
	Password  *string `json:"password,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
	IsAdmin   *bool   `json:"isAdmin,omitempty"`
}

type ListInput struct {
	Username  string     `json:"username"`
	Title     *string    `json:"title,omitempty"`
	ListType  *bool      `json:"listType,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type ListUpdate struct {
	Title     *string    `json:"title,omitempty"`
	ListType  *bool      `json:"listType,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type TaskInput struct {
	Title             string `json:"title"`
	ExpectedPomodoros *int   `json:"expectedPomodoros,omitempty"`
	CompletedCycles   *int   `json:"completedCycles,omitempty"`
	CompletedStatus   *bool  `json:"completedStatus,omitempty"`
}

type TaskUpdate struct {
	Title             *string `json:"title,omitempty"`
	ListID            *int    `json:"listId,omitempty"`
	ExpectedPomodoros *int    `json:"expectedPomodoros,omitempty"`
	CompletedCycles   *int    `json:"completedCycles,omitempty"`
	CompletedStatus   *bool   `json:"completedStatus,omitempty"`
}
