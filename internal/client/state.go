package client

import "github.com/JingYiJun/ClassicIndex/internal/models"

// State is what the client currently displays. Exactly one variant is active,
// so combinations like "loading and errored" cannot be expressed.
type State interface {
	state()
}

// Idle is the initial state: no search attempted yet.
type Idle struct{}

// Loading means a search is in flight.
type Loading struct{}

// Warning reports invalid input that never reached the network.
type Warning struct {
	Message string
}

// Error reports a failed search.
type Error struct {
	Message string
}

// Results holds the ranked passages of the last search. Items may be empty,
// which is a successful search that found nothing.
type Results struct {
	Items []models.SearchResult
}

func (Idle) state()    {}
func (Loading) state() {}
func (Warning) state() {}
func (Error) state()   {}
func (Results) state() {}
