package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"culturehub/internal/database"
	"culturehub/internal/domain"
	"culturehub/internal/domain/calendar"
	"culturehub/internal/domain/facility"
	"culturehub/internal/domain/pricing"
	"culturehub/internal/pkg/lock"
	"culturehub/internal/pkg/logger"
)

var ict = time.FixedZone("ICT", 7*3600)

type recordingHub struct {
	mu     sync.Mutex
	events []calendar.Event
}

func (h *recordingHub) Broadcast(ev calendar.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, ev)
}

func (h *recordingHub) types() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.events))
	for _, ev := range h.events {
		out = append(out, ev.Type)
	}
	return out
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	return m.Called(ctx, key, v).Error(0)
}

type fixture struct {
	db       *gorm.DB
	svc      *Service
	repo     Repository
	hub      *recordingHub
	bus      *MockPublisher
	notifier *Notifier
	hall     domain.Facility
	court    domain.Facility
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:booking_test_%s?mode=memory&cache=shared&_time_format=sqlite", t.Name())
	db, err := database.Connect(dsn, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	hallRate, courtRate := int64(40000), int64(999)
	hall := domain.Facility{Name: "Hội trường A", Slug: "hoi-truong-a", Building: "Khu A", BaseHourlyRate: &hallRate}
	court := domain.Facility{Name: "Sân cầu lông", Slug: "san-cau-long", Building: "Khu B", BaseHourlyRate: &courtRate}
	require.NoError(t, db.Create(&hall).Error)
	require.NoError(t, db.Create(&court).Error)

	engine := pricing.NewEngine(pricing.RateTable{"Sân cầu lông": 50000}, ict)
	hub := &recordingHub{}
	bus := new(MockPublisher)
	bus.On("PublishJSON", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	notifier := NewNotifier(hub, bus, logger.Nop())
	repo := NewRepository(db)

	svc := NewService(repo, facility.NewRepository(db), engine, lock.NewLocalLocker(), notifier, logger.Nop())
	return &fixture{db: db, svc: svc, repo: repo, hub: hub, bus: bus, notifier: notifier, hall: hall, court: court}
}

var (
	staff     = Actor{UserID: 10, Name: "Trần Thị B"}
	otherUser = Actor{UserID: 11, Name: "Lê C"}
	admin     = Actor{UserID: 1, Name: "Admin", Admin: true}
)

func (f *fixture) create(t *testing.T, actor Actor, req CreateRequest) *domain.Booking {
	t.Helper()
	b, err := f.svc.Create(context.Background(), actor, req)
	require.NoError(t, err)
	return b
}

// insert writes a booking directly, bypassing overlap checks.
func (f *fixture) insert(t *testing.T, b domain.Booking) domain.Booking {
	t.Helper()
	if b.Visibility == "" {
		b.Visibility = domain.VisibilityPublic
	}
	b.StartTime = b.StartTime.UTC()
	b.EndTime = b.EndTime.UTC()
	require.NoError(t, f.db.Create(&b).Error)
	return b
}

func local(day, clock string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", day+" "+clock, ict)
	if err != nil {
		panic(err)
	}
	return t
}
