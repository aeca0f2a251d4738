// Package ui holds cross-view toggles. Nothing here is persisted.
package ui

import "sync"

// State is a copy of the preferences at one instant
type State struct {
	ShowAll      bool `json:"showAll"`
	ShowCriteria bool `json:"showCriteria"`
	ShowAnalysis bool `json:"showAnalysis"`
	IsAnalyzing  bool `json:"isAnalyzing"`
}

type Preferences struct {
	mu sync.RWMutex
	s  State
}

// NewPreferences starts with both result panels visible
func NewPreferences() *Preferences {
	return &Preferences{s: State{ShowCriteria: true, ShowAnalysis: true}}
}

func (p *Preferences) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.s
}

func (p *Preferences) set(fn func(s *State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.s)
}

func (p *Preferences) SetShowAll(v bool)      { p.set(func(s *State) { s.ShowAll = v }) }
func (p *Preferences) SetShowCriteria(v bool) { p.set(func(s *State) { s.ShowCriteria = v }) }
func (p *Preferences) SetShowAnalysis(v bool) { p.set(func(s *State) { s.ShowAnalysis = v }) }
func (p *Preferences) SetIsAnalyzing(v bool)  { p.set(func(s *State) { s.IsAnalyzing = v }) }

// ListPageSize is the page size of the positions list: everything when
// ShowAll is on, otherwise the compact page.
func (p *Preferences) ListPageSize(compact, all int) int {
	if p.State().ShowAll {
		return all
	}
	return compact
}
