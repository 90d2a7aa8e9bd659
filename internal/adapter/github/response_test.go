package github

import (
	"encoding/json"
	"testing"

	"github.com/m-zajac/leadharvester/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchResponseToRecords(t *testing.T) {
	t.Parallel()

	var resp searchResponse
	err := json.Unmarshal(validSearchJSON, &resp)
	require.NoError(t, err)

	assert.Equal(t, wantSearchRecords, resp.ToRecords())
}

func TestUserResponseToProfile(t *testing.T) {
	t.Parallel()

	data := []byte(`{
		"login": "bob",
		"name": null,
		"email": "bob@example.com",
		"company": null,
		"bio": null,
		"public_repos": 12
	}`)

	var resp userResponse
	err := json.Unmarshal(data, &resp)
	require.NoError(t, err)

	assert.Equal(t, app.UserProfile{
		Login: "bob",
		Email: "bob@example.com",
	}, resp.ToProfile())
}
