package studio

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/content-studio-agent/internal/models"
	"github.com/BerylCAtieno/content-studio-agent/internal/store"
)

const calendarCells = 42

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

type ScheduleInput struct {
	PostID        string    `json:"post_id"`
	Content       string    `json:"content"`
	Platform      string    `json:"platform"`
	ScheduledDate time.Time `json:"scheduled_date"`
}

type CalendarDay struct {
	Date       string `json:"date"`
	Day        int    `json:"day"`
	OtherMonth bool   `json:"other_month"`
	Today      bool   `json:"today"`
	HasPosts   bool   `json:"has_posts"`
	Platform   string `json:"platform,omitempty"`
}

type CalendarView struct {
	Label string        `json:"label"`
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  []CalendarDay `json:"days"`
}

func (s *Studio) ScheduledPosts() []models.ScheduledPost {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.scheduled)
}

// SchedulePost books content for a date. When PostID is set the post's
// content and platform fill any field the input leaves empty.
func (s *Studio) SchedulePost(ctx context.Context, in ScheduleInput) (models.ScheduledPost, error) {
	if in.ScheduledDate.IsZero() {
		return models.ScheduledPost{}, ErrInvalidDate
	}

	platform, err := normalizePlatform(in.Platform)
	if err != nil {
		return models.ScheduledPost{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := models.ScheduledPost{
		ID:            "scheduled_" + uuid.NewString(),
		PostID:        in.PostID,
		Content:       strings.TrimSpace(in.Content),
		Platform:      platform,
		ScheduledDate: in.ScheduledDate,
		CreatedAt:     s.now(),
	}

	if in.PostID != "" {
		post, ok := s.findPost(in.PostID)
		if !ok {
			return models.ScheduledPost{}, fmt.Errorf("%w: %s", ErrPostNotFound, in.PostID)
		}
		if item.Content == "" {
			item.Content = post.Content
		}
		if item.Platform == "" {
			item.Platform = post.Platform
		}
	}
	if item.Content == "" {
		return models.ScheduledPost{}, ErrEmptyContent
	}

	next := append(clone(s.scheduled), item)
	if err := save(ctx, s.store, store.KeyScheduled, next); err != nil {
		return models.ScheduledPost{}, err
	}
	s.scheduled = next

	s.logger.Info("Post scheduled",
		zap.String("schedule_id", item.ID),
		zap.String("platform", item.Platform),
		zap.Time("scheduled_date", item.ScheduledDate),
	)
	return item, nil
}

func (s *Studio) findPost(id string) (models.Post, bool) {
	for _, p := range s.posts {
		if p.ID == id {
			return p, true
		}
	}
	return models.Post{}, false
}

func (s *Studio) DeleteScheduled(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, found := without(s.scheduled, func(p models.ScheduledPost) bool { return p.ID == id })
	if !found {
		return fmt.Errorf("%w: %s", ErrScheduleNotFound, id)
	}
	if err := save(ctx, s.store, store.KeyScheduled, next); err != nil {
		return err
	}
	s.scheduled = next
	return nil
}

// UpcomingPosts returns scheduled items at or after now, soonest first.
// A limit of zero or less returns all of them.
func (s *Studio) UpcomingPosts(now time.Time, limit int) []models.ScheduledPost {
	s.mu.RLock()
	upcoming := make([]models.ScheduledPost, 0, len(s.scheduled))
	for _, item := range s.scheduled {
		if !item.ScheduledDate.Before(now) {
			upcoming = append(upcoming, item)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].ScheduledDate.Before(upcoming[j].ScheduledDate)
	})
	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// Calendar lays out a six-week grid for the given month, starting on the
// Sunday on or before the first. Month values outside 1-12 roll over into
// neighbouring years. Dates are compared in now's location.
func (s *Studio) Calendar(year int, month time.Month, now time.Time) CalendarView {
	loc := now.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	s.mu.RLock()
	byDay := make(map[string]string, len(s.scheduled))
	for _, item := range s.scheduled {
		key := item.ScheduledDate.In(loc).Format(time.DateOnly)
		if _, seen := byDay[key]; !seen {
			byDay[key] = item.Platform
		}
	}
	s.mu.RUnlock()

	today := now.Format(time.DateOnly)
	days := make([]CalendarDay, 0, calendarCells)
	for i := 0; i < calendarCells; i++ {
		date := start.AddDate(0, 0, i)
		key := date.Format(time.DateOnly)
		platform, has := byDay[key]
		days = append(days, CalendarDay{
			Date:       key,
			Day:        date.Day(),
			OtherMonth: date.Month() != first.Month(),
			Today:      key == today,
			HasPosts:   has,
			Platform:   platform,
		})
	}

	return CalendarView{
		Label: fmt.Sprintf("%s %d", monthNames[first.Month()-1], first.Year()),
		Year:  first.Year(),
		Month: int(first.Month()),
		Days:  days,
	}
}
