package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/farellandr/eventhub/config"
	"github.com/farellandr/eventhub/internal/models"
	"github.com/farellandr/eventhub/internal/repository"
)

type testServices struct {
	db      *gorm.DB
	users   UserService
	events  EventService
	tickets TicketService
}

func setupServices(t *testing.T) *testServices {
	t.Helper()

	db, err := config.OpenDatabase(&config.Config{DBDriver: config.DriverSQLite, DBPath: "file::memory:"})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() { _ = config.CloseDatabase(db) })

	logger := zap.NewNop()
	userRepo := repository.NewUserRepoGorm(db)
	eventRepo := repository.NewEventRepoGorm(db)
	ticketRepo := repository.NewTicketRepoGorm(db)

	return &testServices{
		db:      db,
		users:   NewUserService(db, userRepo, eventRepo, logger, bcrypt.MinCost),
		events:  NewEventService(db, eventRepo, userRepo, logger),
		tickets: NewTicketService(db, ticketRepo, eventRepo, userRepo, logger),
	}
}

func (s *testServices) mustUser(t *testing.T, email string, role models.Role) *models.User {
	t.Helper()
	user, err := s.users.CreateUser(context.Background(), CreateUserInput{
		Name:     "User " + email,
		Email:    email,
		Password: "p1",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func (s *testServices) mustEvent(t *testing.T, creator uint, price string) *models.Event {
	t.Helper()
	desc := "A conference"
	event, err := s.events.CreateEvent(context.Background(), CreateEventInput{
		Title:       "Conf",
		Date:        "2024-06-15T09:00:00",
		Location:    "Berlin",
		Description: &desc,
		Price:       decimal.RequireFromString(price),
		Category:    "Biz",
		CreatedBy:   creator,
	})
	require.NoError(t, err)
	return event
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	s.mustUser(t, "a@x.com", models.RoleCustomer)

	_, err := s.users.CreateUser(ctx, CreateUserInput{Name: "Other", Email: "a@x.com", Password: "p2", Role: models.RoleAdmin})
	assert.ErrorIs(t, err, ErrConflict)

	users, err := s.users.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestCreateUser_Validation(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   CreateUserInput
	}{
		{"missing name", CreateUserInput{Email: "a@x.com", Password: "p", Role: models.RoleCustomer}},
		{"missing email", CreateUserInput{Name: "A", Password: "p", Role: models.RoleCustomer}},
		{"missing password", CreateUserInput{Name: "A", Email: "a@x.com", Role: models.RoleCustomer}},
		{"unknown role", CreateUserInput{Name: "A", Email: "a@x.com", Password: "p", Role: models.Role("owner")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.users.CreateUser(ctx, tt.in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreateUser_StoresHash(t *testing.T) {
	s := setupServices(t)
	user := s.mustUser(t, "a@x.com", models.RoleCustomer)

	assert.NotEqual(t, "p1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("p1")))
}

func TestAuthenticate(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	created := s.mustUser(t, "a@x.com", models.RoleCustomer)

	user, err := s.users.Authenticate(ctx, "a@x.com", "p1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = s.users.Authenticate(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.users.Authenticate(ctx, "nobody@x.com", "p1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTicketPriceIsSnapshot(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	admin := s.mustUser(t, "admin@x.com", models.RoleAdmin)
	customer := s.mustUser(t, "a@x.com", models.RoleCustomer)
	event := s.mustEvent(t, admin.ID, "100")

	ticket, err := s.tickets.CreateTicket(ctx, customer.ID, event.ID)
	require.NoError(t, err)
	assert.True(t, ticket.Price.Equal(decimal.NewFromInt(100)))

	newPrice := decimal.NewFromInt(200)
	_, err = s.events.PatchEvent(ctx, event.ID, models.EventPatch{Price: models.Some(&newPrice)})
	require.NoError(t, err)

	tickets, err := s.tickets.ListTickets(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.True(t, tickets[0].Price.Equal(decimal.NewFromInt(100)), "got %s", tickets[0].Price)
}

func TestCreateTicket_MissingReferences(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	admin := s.mustUser(t, "admin@x.com", models.RoleAdmin)
	event := s.mustEvent(t, admin.ID, "10")

	_, err := s.tickets.CreateTicket(ctx, admin.ID, event.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.tickets.CreateTicket(ctx, admin.ID+100, event.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	tickets, err := s.tickets.ListTickets(ctx)
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestDeleteEvent_CascadesTickets(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	admin := s.mustUser(t, "admin@x.com", models.RoleAdmin)
	customer := s.mustUser(t, "a@x.com", models.RoleCustomer)
	doomed := s.mustEvent(t, admin.ID, "100")
	kept := s.mustEvent(t, admin.ID, "50")

	_, err := s.tickets.CreateTicket(ctx, customer.ID, doomed.ID)
	require.NoError(t, err)
	keptTicket, err := s.tickets.CreateTicket(ctx, customer.ID, kept.ID)
	require.NoError(t, err)

	require.NoError(t, s.events.DeleteEvent(ctx, doomed.ID))

	tickets, err := s.tickets.ListTickets(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, keptTicket.ID, tickets[0].ID)

	_, err = s.events.GetEvent(ctx, doomed.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.events.DeleteEvent(ctx, doomed.ID), ErrNotFound)
}

func TestDeleteUser_CascadesTickets(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	admin := s.mustUser(t, "admin@x.com", models.RoleAdmin)
	customer := s.mustUser(t, "a@x.com", models.RoleCustomer)
	other := s.mustUser(t, "b@x.com", models.RoleCustomer)
	event := s.mustEvent(t, admin.ID, "100")

	_, err := s.tickets.CreateTicket(ctx, customer.ID, event.ID)
	require.NoError(t, err)
	_, err = s.tickets.CreateTicket(ctx, customer.ID, event.ID)
	require.NoError(t, err)
	_, err = s.tickets.CreateTicket(ctx, other.ID, event.ID)
	require.NoError(t, err)

	require.NoError(t, s.users.DeleteUser(ctx, customer.ID))

	tickets, err := s.tickets.ListTickets(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, other.ID, tickets[0].UserID)

	assert.ErrorIs(t, s.users.DeleteUser(ctx, customer.ID), ErrNotFound)
}

func TestDeleteUser_RestrictedWhileOwningEvents(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	admin := s.mustUser(t, "admin@x.com", models.RoleAdmin)
	event := s.mustEvent(t, admin.ID, "100")

	assert.ErrorIs(t, s.users.DeleteUser(ctx, admin.ID), ErrConflict)

	require.NoError(t, s.events.DeleteEvent(ctx, event.ID))
	assert.NoError(t, s.users.DeleteUser(ctx, admin.ID))
}

func TestCreateEvent(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	admin := s.mustUser(t, "admin@x.com", models.RoleAdmin)

	event := s.mustEvent(t, admin.ID, "100")
	got, err := s.events.GetEvent(ctx, event.ID)
	require.NoError(t, err)

	want := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	assert.True(t, want.Equal(got.Date), "got %s", got.Date)
	assert.Equal(t, "Conf", got.Title)
	assert.Nil(t, got.Image)
	require.NotNil(t, got.Description)
	assert.Equal(t, "A conference", *got.Description)
}

func TestCreateEvent_Validation(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	admin := s.mustUser(t, "admin@x.com", models.RoleAdmin)

	valid := CreateEventInput{
		Title:     "Conf",
		Date:      "2024-06-15T09:00:00",
		Location:  "Berlin",
		Price:     decimal.NewFromInt(10),
		Category:  "Biz",
		CreatedBy: admin.ID,
	}

	tests := []struct {
		name   string
		mutate func(in *CreateEventInput)
	}{
		{"bad date", func(in *CreateEventInput) { in.Date = "15/06/2024" }},
		{"blank title", func(in *CreateEventInput) { in.Title = "  " }},
		{"negative price", func(in *CreateEventInput) { in.Price = decimal.NewFromInt(-1) }},
		{"unknown creator", func(in *CreateEventInput) { in.CreatedBy = admin.ID + 99 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := s.events.CreateEvent(ctx, in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	events, err := s.events.ListEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestPatchEvent_OnlyTouchesGivenFields(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	admin := s.mustUser(t, "admin@x.com", models.RoleAdmin)
	event := s.mustEvent(t, admin.ID, "100")

	price := decimal.NewFromInt(50)
	patched, err := s.events.PatchEvent(ctx, event.ID, models.EventPatch{Price: models.Some(&price)})
	require.NoError(t, err)

	got, err := s.events.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(price))
	assert.True(t, patched.Price.Equal(price))
	assert.Equal(t, event.Title, got.Title)
	assert.Equal(t, event.Location, got.Location)
	assert.Equal(t, event.Category, got.Category)
	assert.Equal(t, event.Description, got.Description)
	assert.Equal(t, event.Image, got.Image)
	assert.Equal(t, event.CreatedBy, got.CreatedBy)
	assert.True(t, event.Date.Equal(got.Date))
}

func TestPatchEvent(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	admin := s.mustUser(t, "admin@x.com", models.RoleAdmin)
	event := s.mustEvent(t, admin.ID, "100")

	image := "https://example.com/a.png"
	got, err := s.events.PatchEvent(ctx, event.ID, models.EventPatch{
		Date:        models.Some("2025-01-02T03:04:05Z"),
		Image:       models.Some(&image),
		Description: models.Some[*string](nil),
	})
	require.NoError(t, err)
	assert.True(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC).Equal(got.Date))
	require.NotNil(t, got.Image)
	assert.Equal(t, image, *got.Image)
	assert.Nil(t, got.Description)

	_, err = s.events.PatchEvent(ctx, event.ID, models.EventPatch{Date: models.Some("tomorrow")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.events.PatchEvent(ctx, event.ID, models.EventPatch{Price: models.Some[*decimal.Decimal](nil)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.events.PatchEvent(ctx, event.ID+1, models.EventPatch{Title: models.Some("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserViews(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	admin := s.mustUser(t, "admin@x.com", models.RoleAdmin)
	customer := s.mustUser(t, "a@x.com", models.RoleCustomer)
	first := s.mustEvent(t, admin.ID, "100")
	second := s.mustEvent(t, admin.ID, "20")

	_, err := s.tickets.CreateTicket(ctx, customer.ID, second.ID)
	require.NoError(t, err)

	held, err := s.tickets.ListUserTickets(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, held, 1)
	require.NotNil(t, held[0].Event)
	assert.Equal(t, second.ID, held[0].Event.ID)

	created, err := s.events.ListEventsByCreator(ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, first.ID, created[0].ID)

	none, err := s.events.ListEventsByCreator(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteTicket(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	admin := s.mustUser(t, "admin@x.com", models.RoleAdmin)
	event := s.mustEvent(t, admin.ID, "100")

	ticket, err := s.tickets.CreateTicket(ctx, admin.ID, event.ID)
	require.NoError(t, err)

	require.NoError(t, s.tickets.DeleteTicket(ctx, ticket.ID))
	assert.ErrorIs(t, s.tickets.DeleteTicket(ctx, ticket.ID), ErrNotFound)
}
