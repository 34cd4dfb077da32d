package services

import (
	"errors"
	"strings"
	"time"

	"github.com/yzhyun/askmate/internal/models"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAnswererNotFound distinguishes "no secret on record" (404) from a
// plain mismatch (401).
var ErrAnswererNotFound = errors.New("answerer not found")

const adminAuthRowID = 1

// CredentialStore gates admin and answerer actions behind shared secrets.
// The wire contract is exact-match verification; how the secret is stored
// is an implementation detail behind this interface.
type CredentialStore interface {
	VerifyAdmin(candidate string) (bool, error)
	SetAdminPassword(password string) error
	VerifyAnswerer(name, candidate string) (bool, error)
	SetAnswererPassword(name, password string) (*models.AnswererPassword, error)
	GetAnswererPassword(name string) (string, error)
	ListAnswererPasswords() ([]models.AnswererPassword, error)
}

// PlaintextStore keeps secrets as stored plaintext and compares them with
// case-sensitive string equality, no trimming. This mirrors what the
// deployed clients expect; swap in BcryptStore to harden without touching
// callers.
type PlaintextStore struct {
	db *gorm.DB
}

func NewPlaintextStore(db *gorm.DB) *PlaintextStore {
	return &PlaintextStore{db: db}
}

func (s *PlaintextStore) VerifyAdmin(candidate string) (bool, error) {
	var auth models.AdminAuth
	err := s.db.First(&auth, adminAuthRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return auth.Password == candidate, nil
}

func (s *PlaintextStore) SetAdminPassword(password string) error {
	auth := models.AdminAuth{ID: adminAuthRowID, Password: password}
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"password":   password,
			"created_at": time.Now(),
		}),
	}).Create(&auth).Error
}

func (s *PlaintextStore) VerifyAnswerer(name, candidate string) (bool, error) {
	var row models.AnswererPassword
	err := s.db.Where("answerer_name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrAnswererNotFound
	}
	if err != nil {
		return false, err
	}
	return row.Password == candidate, nil
}

func (s *PlaintextStore) SetAnswererPassword(name, password string) (*models.AnswererPassword, error) {
	row := models.AnswererPassword{AnswererName: name, Password: password}
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "answerer_name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"password":   password,
			"created_at": time.Now(),
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	var saved models.AnswererPassword
	if err := s.db.Where("answerer_name = ?", name).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *PlaintextStore) GetAnswererPassword(name string) (string, error) {
	var row models.AnswererPassword
	err := s.db.Where("answerer_name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrAnswererNotFound
	}
	if err != nil {
		return "", err
	}
	return row.Password, nil
}

func (s *PlaintextStore) ListAnswererPasswords() ([]models.AnswererPassword, error) {
	var rows []models.AnswererPassword
	err := s.db.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// BcryptStore is the hardened CredentialStore. Secrets are hashed on write;
// reads of the raw secret are not supported.
type BcryptStore struct {
	db *gorm.DB
}

func NewBcryptStore(db *gorm.DB) *BcryptStore {
	return &BcryptStore{db: db}
}

func (s *BcryptStore) VerifyAdmin(candidate string) (bool, error) {
	var auth models.AdminAuth
	err := s.db.First(&auth, adminAuthRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return bcrypt.CompareHashAndPassword([]byte(auth.Password), []byte(candidate)) == nil, nil
}

func (s *BcryptStore) SetAdminPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	auth := models.AdminAuth{ID: adminAuthRowID, Password: string(hash)}
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"password":   string(hash),
			"created_at": time.Now(),
		}),
	}).Create(&auth).Error
}

func (s *BcryptStore) VerifyAnswerer(name, candidate string) (bool, error) {
	var row models.AnswererPassword
	err := s.db.Where("answerer_name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrAnswererNotFound
	}
	if err != nil {
		return false, err
	}
	return bcrypt.CompareHashAndPassword([]byte(row.Password), []byte(candidate)) == nil, nil
}

func (s *BcryptStore) SetAnswererPassword(name, password string) (*models.AnswererPassword, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	row := models.AnswererPassword{AnswererName: name, Password: string(hash)}
	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "answerer_name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"password":   string(hash),
			"created_at": time.Now(),
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	var saved models.AnswererPassword
	if err := s.db.Where("answerer_name = ?", name).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *BcryptStore) GetAnswererPassword(name string) (string, error) {
	return "", errors.New("raw passwords are not readable from the bcrypt store")
}

func (s *BcryptStore) ListAnswererPasswords() ([]models.AnswererPassword, error) {
	var rows []models.AnswererPassword
	err := s.db.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// AuthService fronts a CredentialStore with a TTL memoization of answerer
// verifications. Entries for a name are dropped whenever its password is
// set, so a rotated secret never validates from a stale cache hit.
type AuthService struct {
	store CredentialStore
	cache *gocache.Cache
}

func NewAuthService(store CredentialStore, ttl time.Duration) *AuthService {
	return &AuthService{
		store: store,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (s *AuthService) VerifyAdmin(candidate string) (bool, error) {
	return s.store.VerifyAdmin(candidate)
}

func (s *AuthService) SetAdminPassword(password string) error {
	return s.store.SetAdminPassword(password)
}

func (s *AuthService) VerifyAnswerer(name, candidate string) (bool, error) {
	key := name + ":" + candidate
	if hit, ok := s.cache.Get(key); ok {
		return hit.(bool), nil
	}

	ok, err := s.store.VerifyAnswerer(name, candidate)
	if err != nil {
		return false, err
	}
	s.cache.SetDefault(key, ok)
	return ok, nil
}

func (s *AuthService) SetAnswererPassword(name, password string) (*models.AnswererPassword, error) {
	row, err := s.store.SetAnswererPassword(name, password)
	if err != nil {
		return nil, err
	}
	s.invalidate(name)
	return row, nil
}

func (s *AuthService) GetAnswererPassword(name string) (string, error) {
	return s.store.GetAnswererPassword(name)
}

func (s *AuthService) ListAnswererPasswords() ([]models.AnswererPassword, error) {
	return s.store.ListAnswererPasswords()
}

func (s *AuthService) invalidate(name string) {
	prefix := name + ":"
	for key := range s.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			s.cache.Delete(key)
		}
	}
}
