package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type indexedModel struct {
	ID        string `bson:"_id,omitempty"`
	Mode      string `bson:"mode" index:"single:1;compound:mode_created"`
	RequestID string `bson:"requestId" index:"unique"`
	CreatedAt int64  `bson:"createdAt" index:"single:-1;compound:mode_created,order:-1"`
	ExpiresAt int64  `bson:"expiresAt" index:"ttl:3600"`
	Ignored   string `index:"single:1"`
	Plain     string `bson:"plain"`
}

func TestIndexSpecs(t *testing.T) {
	specs, err := IndexSpecs(&indexedModel{})
	require.NoError(t, err)

	byName := map[string]IndexSpec{}
	for _, s := range specs {
		byName[s.Name] = s
	}

	require.Len(t, specs, 5)
	assert.Equal(t, bson.D{{Key: "mode", Value: 1}}, byName["mode_single"].Keys)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, byName["createdAt_single"].Keys)
	assert.True(t, byName["requestId_unique"].Unique)
	require.NotNil(t, byName["expiresAt_ttl"].TTL)
	assert.Equal(t, int32(3600), *byName["expiresAt_ttl"].TTL)
	assert.Equal(t, bson.D{{Key: "mode", Value: 1}, {Key: "createdAt", Value: -1}}, byName["mode_created"].Keys)
}

func TestIndexSpecs_Errors(t *testing.T) {
	_, err := IndexSpecs(42)
	assert.Error(t, err)

	type badTTL struct {
		At int64 `bson:"at" index:"ttl:soon"`
	}
	_, err = IndexSpecs(badTTL{})
	assert.Error(t, err)
}

func TestParseIndexTag(t *testing.T) {
	got := parseIndexTag("single:1;compound:g,order:-1")
	assert.Equal(t, []map[string]string{
		{"single": "1"},
		{"compound": "g", "order": "-1"},
	}, got)
}
