package repositories

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewBadgerFavoriteRepository(db)

	const userID, postID = 1, 3

	t.Run("toggle on", func(t *testing.T) {
		added, err := repo.Toggle(userID, postID)
		assert.NoError(t, err)
		assert.True(t, added)

		exists, err := repo.Exists(userID, postID)
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("toggle off", func(t *testing.T) {
		added, err := repo.Toggle(userID, postID)
		assert.NoError(t, err)
		assert.False(t, added)

		exists, err := repo.Exists(userID, postID)
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("count and list by user", func(t *testing.T) {
		_, err := repo.Toggle(userID, 10)
		require.NoError(t, err)
		_, err = repo.Toggle(userID, 11)
		require.NoError(t, err)
		_, err = repo.Toggle(2, 10)
		require.NoError(t, err)

		count, err := repo.CountByPost(10)
		assert.NoError(t, err)
		assert.Equal(t, 2, count)

		favorites, err := repo.ListByUser(userID)
		assert.NoError(t, err)
		assert.Len(t, favorites, 2)
		for _, f := range favorites {
			assert.Equal(t, userID, f.UserID)
		}
	})
}

// Simulated race: many concurrent toggles from the same user on the same post
// must never leave more than one favorite row.
func TestFavoriteRepositoryConcurrentToggle(t *testing.T) {
	db := openTestDB(t)
	repo := NewBadgerFavoriteRepository(db)

	const userID, postID, toggles = 9, 30, 20

	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Toggle(userID, postID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := repo.CountByPost(postID)
	assert.NoError(t, err)
	assert.LessOrEqual(t, count, 1)
}
