package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	r, err = ParseRole("customer")
	require.NoError(t, err)
	assert.Equal(t, RoleCustomer, r)

	for _, bad := range []string{"", "Admin", "organizer"} {
		_, err := ParseRole(bad)
		assert.Error(t, err, bad)
	}
}

func TestRoleJSON(t *testing.T) {
	var payload struct {
		Role Role `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"role":"customer"}`), &payload))
	assert.Equal(t, RoleCustomer, payload.Role)

	assert.Error(t, json.Unmarshal([]byte(`{"role":"superuser"}`), &payload))
	assert.Error(t, json.Unmarshal([]byte(`{"role":7}`), &payload))

	out, err := json.Marshal(UserResponse{ID: 1, Name: "A", Email: "a@x.com", Role: RoleAdmin})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"A","email":"a@x.com","role":"admin"}`, string(out))
}

func TestRoleScanValue(t *testing.T) {
	var r Role
	require.NoError(t, r.Scan([]byte("admin")))
	assert.Equal(t, RoleAdmin, r)
	assert.Error(t, r.Scan("guest"))
	assert.Error(t, r.Scan(42))

	v, err := RoleCustomer.Value()
	require.NoError(t, err)
	assert.Equal(t, "customer", v)

	_, err = Role("guest").Value()
	assert.Error(t, err)
}

func TestParseISODate(t *testing.T) {
	want := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2024-06-15T09:00:00",
		"2024-06-15T09:00",
		"2024-06-15T09:00:00Z",
		"2024-06-15T11:00:00+02:00",
		"2024-06-15 09:00:00",
		"2024-06-15T09:00:00.000",
	} {
		got, err := ParseISODate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s parsed as %s", in, got)
		assert.Equal(t, time.UTC, got.Location())
	}

	day, err := ParseISODate("2024-06-15")
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC).Equal(day))

	for _, bad := range []string{"", "yesterday", "15/06/2024", "2024-13-01"} {
		_, err := ParseISODate(bad)
		assert.Error(t, err, bad)
	}
}

func TestEventPatchPresence(t *testing.T) {
	var patch EventPatch
	require.NoError(t, json.Unmarshal([]byte(`{"price":50,"description":null}`), &patch))

	assert.True(t, patch.Price.Set)
	require.NotNil(t, patch.Price.Value)
	assert.True(t, patch.Price.Value.Equal(decimal.NewFromInt(50)))

	assert.True(t, patch.Description.Set)
	assert.Nil(t, patch.Description.Value)

	assert.False(t, patch.Title.Set)
	assert.False(t, patch.Date.Set)
	assert.False(t, patch.Image.Set)
	assert.False(t, patch.Location.Set)
	assert.False(t, patch.Category.Set)
}

func TestEventResponseJSON(t *testing.T) {
	event := Event{
		ID:        3,
		Title:     "Conf",
		Date:      time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC),
		Location:  "Berlin",
		Price:     decimal.RequireFromString("299.99"),
		Category:  "Biz",
		CreatedBy: 1,
	}

	out, err := json.Marshal(event.Response())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 3,
		"title": "Conf",
		"date": "2024-06-15T09:00:00Z",
		"location": "Berlin",
		"description": null,
		"price": 299.99,
		"category": "Biz",
		"image": null,
		"created_by": 1
	}`, string(out))

	out, err = json.Marshal(event.Summary())
	require.NoError(t, err)
	assert.NotContains(t, string(out), "price")
	assert.NotContains(t, string(out), "category")
}
