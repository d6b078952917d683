package syncer

import (
	"catalog/models"
	"catalog/repository"
)

// QueryService is the pure read facade over the local store. It never
// performs network I/O; every call answers synchronously from durable
// storage, so the presentation layer keeps working without connectivity.
type QueryService struct {
	movies  *repository.MovieRepository
	details *repository.DetailRepository
	syncLog *repository.SyncLogRepository
}

// NewQueryService creates a query service over the given repositories.
func NewQueryService(movies *repository.MovieRepository, details *repository.DetailRepository,
	syncLog *repository.SyncLogRepository) *QueryService {
	return &QueryService{
		movies:  movies,
		details: details,
		syncLog: syncLog,
	}
}

// MoviesOrderedBy returns the cached ranked list for a sort order.
func (q *QueryService) MoviesOrderedBy(sortOrder models.SortOrder) ([]models.Movie, error) {
	return q.movies.MoviesBySortOrder(sortOrder)
}

// Movie returns one cached movie by remote id.
func (q *QueryService) Movie(remoteID int64) (*models.Movie, error) {
	return q.movies.GetByID(remoteID)
}

// Trailers returns the cached trailers for a movie, empty if unfetched.
func (q *QueryService) Trailers(movieID int64) ([]models.Trailer, error) {
	return q.details.Trailers(movieID)
}

// Reviews returns the cached reviews for a movie, empty if unfetched.
func (q *QueryService) Reviews(movieID int64) ([]models.Review, error) {
	return q.details.Reviews(movieID)
}

// SyncHistory returns recent refresh outcomes, newest first.
func (q *QueryService) SyncHistory(limit int) ([]models.SyncEntry, error) {
	return q.syncLog.Recent(limit)
}
