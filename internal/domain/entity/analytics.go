package entity

import "time"

// DailyViews visitas al perfil de una empresa en un día.
type DailyViews struct {
	Day   time.Time
	Views int
}

// ProfileViewStats agregados de visitas al perfil de una empresa.
type ProfileViewStats struct {
	Total      int
	LastPeriod int
	Daily      []DailyViews
}
