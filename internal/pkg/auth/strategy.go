package auth

import "time"

type Strategy interface {
	IssueToken(profileID string) (string, error)
	ParseToken(token string) (string, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
