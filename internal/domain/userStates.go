package domain

// SessionState tracks one chat's progress through the two-actor dialog:
// which step comes next, the actors picked so far and the candidate cards
// still awaiting a pick. CorrelationID ties the chat's log lines together.
type SessionState struct {
	CorrelationID     string
	Step              string
	FirstActorID      int
	SecondActorID     int
	SentMediaMessages []int
	PendingActors     []PhotoData
}

// PhotoData is one selectable candidate card: a photo with a caption, a
// provider page link and the actor ID carried in the pick button.
type PhotoData struct {
	ID       int
	PhotoURL string
	ActorURL string
	Caption  string
}
