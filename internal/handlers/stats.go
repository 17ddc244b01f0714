package handlers

import (
	"context"

	"github.com/Soumya-Xd/CreativeShowcase/internal/models"
	"github.com/Soumya-Xd/CreativeShowcase/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// collectUserStats derives the profile counters by query. Nothing here is
// cached, so the numbers can never drift from the underlying collections.
func collectUserStats(
	ctx context.Context,
	userID primitive.ObjectID,
	artworkRepo repositories.ArtworkRepository,
	followRepo repositories.FollowRepository,
	likeRepo repositories.LikeRepository,
) (models.UserStats, error) {
	var stats models.UserStats

	artworkCount, err := artworkRepo.CountArtworksByArtist(ctx, userID)
	if err != nil {
		return stats, err
	}

	followersCount, err := followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return stats, err
	}

	followingCount, err := followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return stats, err
	}

	artworkIDs, err := artworkRepo.ArtworkIDsByArtist(ctx, userID)
	if err != nil {
		return stats, err
	}
	totalLikes, err := likeRepo.CountLikesByArtworks(ctx, artworkIDs)
	if err != nil {
		return stats, err
	}

	stats.ArtworkCount = artworkCount
	stats.FollowersCount = followersCount
	stats.FollowingCount = followingCount
	stats.TotalLikes = totalLikes
	return stats, nil
}
