package redis

import (
	"fmt"

	"github.com/mcoot/clubroster/internal/model"
)

// Key prefix for all roster data
const keyPrefix = "clubroster"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%d", keyPrefix, id)
}

// playerIndexKey returns the Redis key for the ZSET of player IDs, scored by ID
func playerIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// playerSequenceKey returns the Redis key for the player ID counter
func playerSequenceKey() string {
	return fmt.Sprintf("%s:seq:player", keyPrefix)
}

// accountKey returns the Redis key for an Account
func accountKey(email string) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, email)
}

// sessionKey returns the Redis key for a Session
func sessionKey(token string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, token)
}
