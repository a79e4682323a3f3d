package service

import (
	"campaign/internal/auth"
	"campaign/internal/cache"
	"campaign/internal/entity"
	"campaign/internal/model"
)

type (
	PolicyService     = Collection[entity.Policy, entity.TopicUpdates]
	BasicTopicService = Collection[entity.BasicTopic, entity.TopicUpdates]
	FAQService        = Collection[entity.FAQ, entity.FAQUpdates]
	EventService      = Collection[entity.Event, entity.EventUpdates]
)

// Services bundles every service the HTTP layer depends on.
type Services struct {
	Auth        *AuthService
	Candidates  *CandidateService
	Policies    *PolicyService
	BasicTopics *BasicTopicService
	FAQs        *FAQService
	Events      *EventService
}

// Observer receives login and photo cleanup outcomes.
type Observer interface {
	LoginObserver
	CleanupObserver
}

// NewServices wires the services on top of a repository.
func NewServices(repo model.Repository, tokens *auth.Manager, photos *PhotoStore, c cache.Cache, observer Observer) *Services {
	return &Services{
		Auth:        NewAuthService(repo, tokens, observer),
		Candidates:  NewCandidateService(repo, photos, c, observer),
		Policies:    NewCollection[entity.Policy, entity.TopicUpdates]("Policy", "policies", repo.Policies(), c),
		BasicTopics: NewCollection[entity.BasicTopic, entity.TopicUpdates]("Basic topic", "basic_topics", repo.BasicTopics(), c),
		FAQs:        NewCollection[entity.FAQ, entity.FAQUpdates]("FAQ", "faqs", repo.FAQs(), c),
		Events:      NewCollection[entity.Event, entity.EventUpdates]("Event", "events", repo.Events(), c),
	}
}
