// Package scanner runs one full discovery cycle: acquire candidate posts,
// classify them, persist the qualifying ones, and hand the alert-grade
// subset to the notifier.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go-gigradar-automation/internal/classifier"
	"go-gigradar-automation/internal/models"
	"go-gigradar-automation/internal/scraper"

	"golang.org/x/sync/errgroup"
)

// ErrScanActive is returned when a trigger fires while a run is already
// in flight. The trigger is dropped, never queued.
var ErrScanActive = errors.New("scan already in progress")

// Store is the narrow persistence surface the scanner needs.
type Store interface {
	InsertGigIfAbsent(ctx context.Context, gig *models.Gig) (bool, error)
	ListEligibleSubscribers(ctx context.Context) ([]models.Subscriber, error)
}

// AlertSender pushes alert-grade gigs to subscribers, best effort.
type AlertSender interface {
	Notify(gigs []models.Gig, subs []models.Subscriber) int
	SendStatus(text string)
}

// Report summarises one scan cycle.
type Report struct {
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
	Candidates  int           `json:"candidates"`
	Accepted    int           `json:"accepted"`
	New         int           `json:"new"`
	Alerted     int           `json:"alerted"`
	AuthMissing bool          `json:"auth_missing"`
}

type Config struct {
	Queries         []string
	PerQueryLimit   int
	AcceptThreshold int
	AlertThreshold  int
}

type Scanner struct {
	searcher scraper.Searcher
	clf      *classifier.Classifier
	store    Store
	alerts   AlertSender
	cfg      Config

	running atomic.Bool
	now     func() time.Time

	mu   sync.Mutex
	last *Report
}

func New(searcher scraper.Searcher, clf *classifier.Classifier, store Store, alerts AlertSender, cfg Config) *Scanner {
	return &Scanner{
		searcher: searcher,
		clf:      clf,
		store:    store,
		alerts:   alerts,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Status reports whether a scan is currently running.
func (s *Scanner) Status() string {
	if s.running.Load() {
		return "running"
	}
	return "idle"
}

// LastReport returns the most recent completed report, if any.
func (s *Scanner) LastReport() *Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Scan runs one full cycle. At most one scan runs at a time; a second
// caller gets ErrScanActive. No failure inside the run escapes: the worst
// outcome is a zero-count report.
func (s *Scanner) Scan(ctx context.Context) (report Report, err error) {
	if s.running.Swap(true) {
		return Report{}, ErrScanActive
	}
	defer s.running.Store(false)

	//named result: the deferred stamp below must reach the caller's copy
	report.StartedAt = s.now()
	defer func() {
		//a panic anywhere in the cycle must not take the process down
		if r := recover(); r != nil {
			log.Printf("❌ Scan panicked: %v", r)
		}
		report.Duration = s.now().Sub(report.StartedAt)
		s.mu.Lock()
		s.last = &report
		s.mu.Unlock()
	}()

	log.Println("🎯 Starting scan...")

	posts, err := s.searcher.Search(ctx, s.cfg.Queries, s.cfg.PerQueryLimit)
	if err != nil {
		if errors.Is(err, scraper.ErrAuthMissing) {
			log.Println("⚠️ Scan skipped: no authenticated session")
			report.AuthMissing = true
			return report, nil
		}
		log.Printf("⚠️ Acquisition failed: %v", err)
		return report, nil
	}
	report.Candidates = len(posts)
	if len(posts) == 0 {
		log.Println("No posts found")
		return report, nil
	}

	log.Printf("Found %d posts, classifying...", len(posts))
	results := s.classifyAll(ctx, posts)

	var newGigs, alertGigs []models.Gig
	for i, post := range posts {
		res := results[i]
		if res.Score < s.cfg.AcceptThreshold {
			continue
		}
		report.Accepted++

		gig := toGig(post, res, s.now())
		inserted, err := s.store.InsertGigIfAbsent(ctx, &gig)
		if err != nil {
			log.Printf("   ❌ Save error for %s: %v", gig.ExternalID, err)
			continue
		}
		if !inserted {
			//seen in an earlier run, nothing to do
			continue
		}
		report.New++
		newGigs = append(newGigs, gig)
		log.Printf("   ✅ Saved: [%d] %.50s...", gig.Score, gig.Text)

		if gig.Score >= s.cfg.AlertThreshold {
			alertGigs = append(alertGigs, gig)
		}
	}
	log.Printf("✅ Saved %d new gigs", report.New)

	report.Alerted = s.sendAlerts(ctx, alertGigs)
	return report, nil
}

// classifyAll scores every candidate. Classification is pure, so records
// are fanned out across workers.
func (s *Scanner) classifyAll(ctx context.Context, posts []scraper.Post) []classifier.Result {
	results := make([]classifier.Result, len(posts))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := range posts {
		i := i
		g.Go(func() error {
			results[i] = s.clf.Classify(posts[i])
			return nil
		})
	}
	g.Wait() //workers never return errors

	return results
}

func (s *Scanner) sendAlerts(ctx context.Context, gigs []models.Gig) int {
	if len(gigs) == 0 || s.alerts == nil {
		return 0
	}

	sort.Slice(gigs, func(i, j int) bool { return gigs[i].Score > gigs[j].Score })

	subs, err := s.store.ListEligibleSubscribers(ctx)
	if err != nil {
		log.Printf("⚠️ Could not load subscribers: %v", err)
		return 0
	}
	if len(subs) == 0 {
		log.Println("No premium subscribers configured")
		return 0
	}

	log.Printf("📱 Sending alerts to %d subscribers...", len(subs))
	sent := s.alerts.Notify(gigs, subs)
	if sent > 0 {
		s.alerts.SendStatus(fmt.Sprintf("Scan found %d alert-grade gigs, delivered %d messages.", len(gigs), sent))
	}
	return sent
}

func toGig(post scraper.Post, res classifier.Result, now time.Time) models.Gig {
	return models.Gig{
		ExternalID:    post.ExternalID,
		Text:          post.Text,
		AuthorHandle:  post.Author.Handle,
		AuthorName:    post.Author.DisplayName,
		Verified:      post.Author.Verified,
		Followers:     post.Author.Followers,
		SourceURL:     post.SourceURL,
		Likes:         post.Engagement.Likes,
		Reshares:      post.Engagement.Reshares,
		Replies:       post.Engagement.Replies,
		ExternalLinks: post.ExternalLinks,
		Score:         res.Score,
		Category:      Categorize(post.Text),
		Reasons:       res.Reasons,
		PostedAt:      post.PostedAt,
		FirstSeenAt:   now,
	}
}

// Categorize buckets a gig by the highest-priority keyword found in its
// text. Independent of the classifier's score breakdown.
func Categorize(text string) models.Category {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "ambassador") || strings.Contains(lower, "kol"):
		return models.CategoryAmbassador
	case strings.Contains(lower, "community") || strings.Contains(lower, "discord") || strings.Contains(lower, "telegram"):
		return models.CategoryCommunity
	case strings.Contains(lower, "social media") || strings.Contains(lower, "content"):
		return models.CategoryContent
	case strings.Contains(lower, "marketing") || strings.Contains(lower, "growth"):
		return models.CategoryMarketing
	default:
		return models.CategoryOther
	}
}
