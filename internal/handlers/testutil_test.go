package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yzhyun/askmate/internal/middleware"
	"github.com/yzhyun/askmate/internal/models"
	"github.com/yzhyun/askmate/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testAdminPassword = "testadmin123"

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine

	rounds    *services.RoundService
	members   *services.MemberService
	targets   *services.TargetService
	questions *services.QuestionService
	answers   *services.AnswerService
	auth      *services.AuthService
}

// newTestEnv wires the full handler stack against an in-memory database,
// mirroring the route layout in cmd/server.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Member{},
		&models.Round{},
		&models.Target{},
		&models.Question{},
		&models.Answer{},
		&models.AnswererPassword{},
		&models.AdminAuth{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	env := &testEnv{db: db}
	env.rounds = services.NewRoundService(db)
	env.members = services.NewMemberService(db)
	env.targets = services.NewTargetService(db, env.rounds)
	env.questions = services.NewQuestionService(db, env.rounds)
	env.answers = services.NewAnswerService(db, env.rounds)
	env.auth = services.NewAuthService(services.NewPlaintextStore(db), time.Minute)

	if err := env.auth.SetAdminPassword(testAdminPassword); err != nil {
		t.Fatalf("seed admin password: %v", err)
	}

	roundHandler := NewRoundHandler(env.rounds, env.questions, env.answers)
	memberHandler := NewMemberHandler(env.members)
	targetHandler := NewTargetHandler(env.targets)
	questionHandler := NewQuestionHandler(env.questions)
	answerHandler := NewAnswerHandler(env.answers, env.auth)
	answererHandler := NewAnswererHandler(env.rounds, env.questions, env.answers, env.auth)
	adminHandler := NewAdminHandler(env.auth, env.answers)

	r := gin.New()
	api := r.Group("/api/v1")

	api.GET("/rounds", roundHandler.ListRounds)
	api.GET("/rounds/current", roundHandler.GetCurrentRound)
	api.GET("/members", memberHandler.ListMembers)
	api.GET("/targets/current", targetHandler.ListCurrentTargets)
	api.POST("/questions", questionHandler.SaveQuestion)
	api.GET("/questions", questionHandler.ListQuestions)
	api.POST("/answers", answerHandler.SaveAnswer)
	api.GET("/answerer-auth", answererHandler.Auth)
	api.GET("/qa/:roundId/:answererName", answererHandler.QAFeed)
	api.POST("/admin/login", adminHandler.Login)

	admin := api.Group("")
	admin.Use(middleware.AdminAuth(env.auth))
	{
		admin.POST("/rounds", roundHandler.CreateRound)
		admin.POST("/rounds/:id/switch", roundHandler.SwitchRound)
		admin.DELETE("/rounds/:id", roundHandler.DeleteRound)
		admin.POST("/members", memberHandler.AddMember)
		admin.POST("/targets", targetHandler.AddTarget)
		admin.POST("/admin/answerer-passwords", adminHandler.SetAnswererPassword)
		admin.POST("/admin/password", adminHandler.SetPassword)
	}

	env.router = r
	return env
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}, admin bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("X-Admin-Password", testAdminPassword)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func (e *testEnv) seedRoundWithTarget(t *testing.T) *models.Round {
	t.Helper()
	round, err := e.rounds.CreateRound("round one", "")
	if err != nil {
		t.Fatalf("seed round: %v", err)
	}
	if _, err := e.targets.AddTarget("Bob"); err != nil {
		t.Fatalf("seed target: %v", err)
	}
	if _, err := e.members.AddMember("Alice"); err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return round
}
