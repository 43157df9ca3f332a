package seed

import (
	"fmt"
	"math/rand"
	"time"

	"buddyboost/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls demo data generation.
type Options struct {
	// MaxDays bounds how far back generated timestamps spread.
	MaxDays int
	// DryRun builds entities without persisting them.
	DryRun bool
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
	// keeps generated emails unique across one factory run
	emailSeq int
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:     db,
		opts:   opts,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		nextID: 1000,
	}
}

func (f *Factory) spreadCreatedAt() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 30
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)
}

// BuildUser constructs a demo user without persisting it.
func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.MinCost)
	f.emailSeq++
	user := &models.User{
		Email:     fmt.Sprintf("%s%d@example.com", gofakeit.Username(), f.emailSeq),
		Password:  string(hashed),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		XP:        f.rng.Intn(500),
		CreatedAt: f.spreadCreatedAt(),
	}
	for _, override := range overrides {
		override(user)
	}
	return user
}

// CreateUser builds and persists a demo user.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(overrides...)
	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		return user, nil
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a motivational demo post without persisting it.
func (f *Factory) BuildPost(user *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Content:   gofakeit.Sentence(12),
		UserID:    user.ID,
		CreatedAt: f.spreadCreatedAt(),
	}
	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost builds and persists a demo post.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(user, overrides...)
	if f.opts.DryRun {
		f.nextID++
		post.ID = f.nextID
		return post, nil
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a demo comment on a post.
func (f *Factory) CreateComment(user *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(8),
		UserID:  user.ID,
		PostID:  post.ID,
	}
	if f.opts.DryRun {
		f.nextID++
		comment.ID = f.nextID
		return comment, nil
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// reactionKinds mirrors what the frontend offers.
var reactionKinds = []string{"fire", "clap", "heart", "muscle"}

// CreateReaction persists a random demo reaction on a post.
func (f *Factory) CreateReaction(user *models.User, post *models.Post) (*models.Reaction, error) {
	reaction := &models.Reaction{
		UserID: user.ID,
		PostID: post.ID,
		Kind:   reactionKinds[f.rng.Intn(len(reactionKinds))],
	}
	if f.opts.DryRun {
		f.nextID++
		reaction.ID = f.nextID
		return reaction, nil
	}
	if err := f.db.Create(reaction).Error; err != nil {
		return nil, err
	}
	return reaction, nil
}

// SeedDemoData populates the database with a small social mesh for local
// development: users, posts, comments, reactions, and enrollments.
func SeedDemoData(db *gorm.DB, userCount, postsPerUser int) error {
	f := NewFactory(db, Options{MaxDays: 30})

	users := make([]*models.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}

	var posts []*models.Post
	for _, user := range users {
		for i := 0; i < postsPerUser; i++ {
			post, err := f.CreatePost(user)
			if err != nil {
				return err
			}
			posts = append(posts, post)
		}
	}

	for _, post := range posts {
		for _, user := range users {
			if user.ID == post.UserID {
				continue
			}
			if f.rng.Intn(3) == 0 {
				if _, err := f.CreateComment(user, post); err != nil {
					return err
				}
			}
			if f.rng.Intn(2) == 0 {
				if _, err := f.CreateReaction(user, post); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
