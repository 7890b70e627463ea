package studio

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/BerylCAtieno/content-studio-agent/internal/models"
)

const maxActivities = 5

type Stats struct {
	Posts       int `json:"posts"`
	Products    int `json:"products"`
	Scheduled   int `json:"scheduled"`
	ActiveRules int `json:"active_rules"`
}

type Activity struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
	Time string `json:"time"`
	Type string `json:"type"`
}

// Dashboard is everything the landing view renders.
type Dashboard struct {
	User        models.User            `json:"user"`
	Stats       Stats                  `json:"stats"`
	Activity    []Activity             `json:"activity"`
	Automation  AutomationStats        `json:"automation"`
	Connections ConnectionStats        `json:"connections"`
	Upcoming    []models.ScheduledPost `json:"upcoming"`
}

func (s *Studio) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		Posts:     len(s.posts),
		Products:  len(s.products),
		Scheduled: len(s.scheduled),
	}
	for _, r := range s.rules {
		if r.Active {
			stats.ActiveRules++
		}
	}
	return stats
}

// RecentActivity lists the welcome entry, then the newest three posts,
// two products and two scheduled posts, capped at five entries.
func (s *Studio) RecentActivity(now time.Time) []Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	activities := []Activity{{
		Icon: "fas fa-rocket",
		Text: "¡Bienvenido a O Boticário IA! Tu plataforma de contenido está lista",
		Time: "Ahora",
		Type: "post",
	}}

	for _, p := range lastN(s.posts, 3) {
		activities = append(activities, Activity{
			Icon: "fas fa-edit",
			Text: fmt.Sprintf("Post creado: \"%s...\"", truncateRunes(p.Content, 40)),
			Time: TimeAgo(now, p.CreatedAt),
			Type: "post",
		})
	}
	for _, p := range lastN(s.products, 2) {
		activities = append(activities, Activity{
			Icon: "fas fa-plus",
			Text: "Producto disponible: " + p.Name,
			Time: TimeAgo(now, p.CreatedAt),
			Type: "product",
		})
	}
	for _, p := range lastN(s.scheduled, 2) {
		activities = append(activities, Activity{
			Icon: "fas fa-calendar-plus",
			Text: "Publicación programada para " + p.Platform,
			Time: TimeAgo(now, p.CreatedAt),
			Type: "schedule",
		})
	}

	if len(activities) > maxActivities {
		activities = activities[:maxActivities]
	}
	return activities
}

func (s *Studio) Dashboard(now time.Time) Dashboard {
	return Dashboard{
		User:        s.User(),
		Stats:       s.Stats(),
		Activity:    s.RecentActivity(now),
		Automation:  s.AutomationStats(),
		Connections: s.ConnectionStats(),
		Upcoming:    s.UpcomingPosts(now, 5),
	}
}

// TimeAgo renders the age of t relative to now in Spanish.
func TimeAgo(now, t time.Time) string {
	minutes := int(now.Sub(t) / time.Minute)
	switch {
	case minutes < 1:
		return "Ahora"
	case minutes < 60:
		return fmt.Sprintf("Hace %d min", minutes)
	case minutes < 1440:
		return fmt.Sprintf("Hace %d h", minutes/60)
	default:
		return fmt.Sprintf("Hace %d días", minutes/1440)
	}
}

func lastN[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
