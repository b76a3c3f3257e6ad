package view

type UserView struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	IsAdmin   bool   `json:"isAdmin"`
}

type LoginForm struct {
	Email    string
	ReturnTo string
	Error    string
	Fields   map[string]string
}

type RegisterForm struct {
	Email     string
	FirstName string
	LastName  string
	ReturnTo  string
	Error     string
	Fields    map[string]string
}

type AccountPage struct {
	User UserView
}

type AdminReviewsPage struct {
	Reviews []ReviewView
}

type ErrorPage struct {
	Status    int
	Message   string
	RequestID string
}
