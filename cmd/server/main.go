package main

import (
	"log"

	"github.com/yzhyun/askmate/internal/config"
	"github.com/yzhyun/askmate/internal/database"
	"github.com/yzhyun/askmate/internal/handlers"
	"github.com/yzhyun/askmate/internal/middleware"
	"github.com/yzhyun/askmate/internal/services"

	_ "github.com/yzhyun/askmate/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           askmate API
// @version         1.0
// @description     Anonymous multi-round Q&A backend: members ask designated answerers, an admin runs the rounds.
// @host            localhost:8080
// @BasePath        /

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on the environment")
	}
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	roundService := services.NewRoundService(db)
	memberService := services.NewMemberService(db)
	targetService := services.NewTargetService(db, roundService)
	questionService := services.NewQuestionService(db, roundService)
	answerService := services.NewAnswerService(db, roundService)
	authService := services.NewAuthService(services.NewPlaintextStore(db), cfg.AuthCacheTTL)

	roundHandler := handlers.NewRoundHandler(roundService, questionService, answerService)
	memberHandler := handlers.NewMemberHandler(memberService)
	targetHandler := handlers.NewTargetHandler(targetService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	answerHandler := handlers.NewAnswerHandler(answerService, authService)
	answererHandler := handlers.NewAnswererHandler(roundService, questionService, answerService, authService)
	adminHandler := handlers.NewAdminHandler(authService, answerService)

	r := gin.Default()
	r.Use(middleware.RequestID())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Admin-Password", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		rounds := api.Group("/rounds")
		{
			rounds.GET("", roundHandler.ListRounds)
			rounds.GET("/active", roundHandler.ListActiveRounds)
			rounds.GET("/current", roundHandler.GetCurrentRound)
			rounds.GET("/:id/questions", roundHandler.ListRoundQuestions)
			rounds.GET("/:id/answers", roundHandler.ListRoundAnswers)
		}

		adminRounds := api.Group("/rounds")
		adminRounds.Use(middleware.AdminAuth(authService))
		{
			adminRounds.POST("", roundHandler.CreateRound)
			adminRounds.POST("/fix-numbers", roundHandler.FixRoundNumbers)
			adminRounds.POST("/:id/switch", roundHandler.SwitchRound)
			adminRounds.POST("/:id/deactivate", roundHandler.DeactivateRound)
			adminRounds.DELETE("/:id", roundHandler.DeleteRound)
		}

		api.GET("/members", memberHandler.ListMembers)
		api.GET("/members/:name/question-status", memberHandler.QuestionStatus)

		api.GET("/targets", targetHandler.ListTargets)
		api.GET("/targets/current", targetHandler.ListCurrentTargets)

		api.POST("/questions", questionHandler.SaveQuestion)
		api.GET("/questions", questionHandler.ListQuestions)

		api.POST("/answers", answerHandler.SaveAnswer)

		api.GET("/answerer-auth", answererHandler.Auth)
		api.GET("/qa/:roundId/:answererName", answererHandler.QAFeed)

		admin := api.Group("")
		admin.Use(middleware.AdminAuth(authService))
		{
			admin.POST("/members", memberHandler.AddMember)
			admin.POST("/members/:id/deactivate", memberHandler.DeactivateMember)

			admin.POST("/targets", targetHandler.AddTarget)
			admin.POST("/targets/:id/deactivate", targetHandler.DeactivateTarget)
			admin.POST("/targets/adopt-orphans", targetHandler.AdoptOrphanTargets)

			admin.DELETE("/questions", questionHandler.ClearQuestions)
			admin.DELETE("/questions/:id", questionHandler.DeleteQuestion)
			admin.GET("/answers", answerHandler.ListAnswers)
			admin.DELETE("/answers", answerHandler.ClearAnswers)

			admin.POST("/answer-url", answererHandler.GenerateAnswerURL)

			admin.POST("/admin/password", adminHandler.SetPassword)
			admin.GET("/admin/answerer-passwords", adminHandler.ListAnswererPasswords)
			admin.POST("/admin/answerer-passwords", adminHandler.SetAnswererPassword)
			admin.POST("/admin/clear-data", adminHandler.ClearData)
		}

		api.POST("/admin/login", adminHandler.Login)
	}

	log.Printf("listening on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
