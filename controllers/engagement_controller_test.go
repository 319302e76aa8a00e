package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wander-log/api-go/models"
)

func TestToggleLikeTwiceRestoresCount(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	author := createUser(t, db, "alice", "alice@x.com", "password1")
	reader := createUser(t, db, "bob", "bob@x.com", "password2")
	post := createPost(t, db, author.ID, "Paris Trip", "France")
	token := tokenFor(t, reader)

	likePath := fmt.Sprintf("/api/posts/%d/like", post.ID)
	countPath := likePath + "/count"

	getCount := func() int64 {
		w := doRequest(t, r, http.MethodGet, countPath, "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var data struct {
			Count int64 `json:"count"`
		}
		env := decodeEnvelope(t, w)
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		return data.Count
	}

	before := getCount()

	// first toggle activates
	w := doRequest(t, r, http.MethodPost, likePath, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var status struct {
		IsActive bool `json:"is_active"`
	}
	env := decodeEnvelope(t, w)
	assert.NoError(t, json.Unmarshal(env.Data, &status))
	assert.True(t, status.IsActive)
	assert.Equal(t, before+1, getCount())

	// second toggle deactivates and restores the count
	w = doRequest(t, r, http.MethodPost, likePath, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	env = decodeEnvelope(t, w)
	assert.NoError(t, json.Unmarshal(env.Data, &status))
	assert.False(t, status.IsActive)
	assert.Equal(t, before, getCount())
}

func TestLikeAndDislikeAreMutuallyExclusive(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	author := createUser(t, db, "alice", "alice@x.com", "password1")
	reader := createUser(t, db, "bob", "bob@x.com", "password2")
	post := createPost(t, db, author.ID, "Paris Trip", "France")
	token := tokenFor(t, reader)

	w := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", post.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// switching to dislike evicts the like
	w = doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/posts/%d/dislike", post.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var likes, dislikes int64
	db.Model(&models.Reaction{}).Where("post_id = ? AND user_id = ? AND type = ?", post.ID, reader.ID, models.ReactionLike).Count(&likes)
	db.Model(&models.Reaction{}).Where("post_id = ? AND user_id = ? AND type = ?", post.ID, reader.ID, models.ReactionDislike).Count(&dislikes)
	assert.EqualValues(t, 0, likes)
	assert.EqualValues(t, 1, dislikes)
}

func TestReactionOnMissingPost(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	user := createUser(t, db, "alice", "alice@x.com", "password1")
	token := tokenFor(t, user)

	w := doRequest(t, r, http.MethodPost, "/api/posts/9999/like", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Post Not Found", decodeEnvelope(t, w).Error)

	w = doRequest(t, r, http.MethodGet, "/api/posts/9999/like/count", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReactionStatusEndpoint(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	author := createUser(t, db, "alice", "alice@x.com", "password1")
	post := createPost(t, db, author.ID, "Paris Trip", "France")
	token := tokenFor(t, author)

	statusPath := fmt.Sprintf("/api/posts/%d/like", post.ID)

	w := doRequest(t, r, http.MethodGet, statusPath, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var status struct {
		IsActive bool `json:"is_active"`
	}
	assert.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &status))
	assert.False(t, status.IsActive)

	doRequest(t, r, http.MethodPost, statusPath, token, nil)

	w = doRequest(t, r, http.MethodGet, statusPath, token, nil)
	assert.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &status))
	assert.True(t, status.IsActive)
}

func TestComments(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	author := createUser(t, db, "alice", "alice@x.com", "password1")
	commenter := createUser(t, db, "bob", "bob@x.com", "password2")
	post := createPost(t, db, author.ID, "Paris Trip", "France")
	commenterToken := tokenFor(t, commenter)
	authorToken := tokenFor(t, author)

	commentsPath := fmt.Sprintf("/api/posts/%d/comments", post.ID)

	// empty content rejected
	w := doRequest(t, r, http.MethodPost, commentsPath, commenterToken, map[string]string{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPost, commentsPath, commenterToken, map[string]string{"content": "Lovely写真!"})
	assert.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	}
	assert.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &created))
	assert.Equal(t, "bob", created.Username)

	// listed with author usernames
	w = doRequest(t, r, http.MethodGet, commentsPath, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var comments []struct {
		Username string `json:"username"`
		Content  string `json:"content"`
	}
	assert.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &comments))
	assert.Len(t, comments, 1)

	// only the comment author may delete it
	deletePath := fmt.Sprintf("%s/%d", commentsPath, created.ID)
	w = doRequest(t, r, http.MethodDelete, deletePath, authorToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, http.MethodDelete, deletePath, commenterToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodDelete, deletePath, commenterToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentOnMissingPost(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	user := createUser(t, db, "alice", "alice@x.com", "password1")
	token := tokenFor(t, user)

	w := doRequest(t, r, http.MethodPost, "/api/posts/424242/comments", token, map[string]string{"content": "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
