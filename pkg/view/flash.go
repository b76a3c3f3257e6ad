package view

type FlashKind string

const (
	FlashInfo    FlashKind = "info"
	FlashSuccess FlashKind = "success"
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

// Layout is the chrome every HTML page shares.
type Layout struct {
	Title     string
	Flash     *Flash
	CartCount int
	User      *UserView
	CSRFToken string
	RequestID string
}

// Page pairs the layout with the page specific view model.
type Page struct {
	Layout
	Data any
}
