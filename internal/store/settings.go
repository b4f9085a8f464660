package store

import "github.com/osse101/LuckBot_Go/internal/domain"

// Settings returns the bot-wide settings
func (s *Store) Settings() domain.BotSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings applies fn to the settings and writes the settings document
func (s *Store) UpdateSettings(fn func(*domain.BotSettings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.settings
	fn(&s.settings)
	if err := s.write(DocSettings, s.files.Settings, s.settings); err != nil {
		s.settings = prev
		return err
	}
	return nil
}
