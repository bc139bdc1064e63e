package event

import "strings"

type Service struct {
	repo   EventRepo
	engine CounterEngine
	clock  Clock
}

func New(repo EventRepo, engine CounterEngine, clock Clock) *Service {
	return &Service{repo: repo, engine: engine, clock: clock}
}

func isAdmin(role string) bool { return role == "admin" }

// Any authenticated secretariat user records events; owner or admin manages.
func canCreate(role string) bool {
	return role == "user" || role == "moderator" || isAdmin(role)
}

func canManage(actorID, actorRole, ownerID string) bool {
	if isAdmin(actorRole) {
		return true
	}
	return strings.TrimSpace(actorID) != "" && actorID == ownerID
}
