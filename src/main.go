package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"regexp"

	"ars/src/config"
	"ars/src/db"
	"ars/src/lib"
	"ars/src/middlewares"
	"ars/src/models"
	"ars/src/services"
	"ars/src/types"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/joho/godotenv/autoload"
)

const (
	apiPrefix string = "/api/v1"
)

var accommodationKindValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	v, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	switch types.AccommodationType(v) {
	case types.ACCOMMODATION_HOSTEL, types.ACCOMMODATION_HOTEL, types.ACCOMMODATION_SHARED_APARTMENT:
		return true
	}
	return false
}

var genderKindValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	v, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	switch types.Gender(v) {
	case types.GENDER_MALE, types.GENDER_FEMALE, types.GENDER_NONE:
		return true
	}
	return false
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("accommodationkind", accommodationKindValidatorFunc)
		v.RegisterValidation("genderkind", genderKindValidatorFunc)
	}
}

func requestIdMiddleware(ctx *gin.Context) {
	id := ctx.GetHeader("X-Request-Id")
	if id == "" {
		id = uuid.NewString()
	}
	ctx.Set("request_id", id)
	ctx.Writer.Header().Set("X-Request-Id", id)
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(requestIdMiddleware)

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	billingWebhookRoute(router)

	authorized := router.Group(apiPrefix)
	authorized.Use(middlewares.AuthMiddleware)
	{
		registrationHandlers(authorized)
		accommodationHandlers(authorized)
		allocationHandlers(authorized)
		billingHandlers(authorized)
	}
	return router
}

func initDb() {
	gdb := db.GetDb()
	err := gdb.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Registration{},
		&models.AccommodationCategory{},
		&models.Facility{},
		&models.HostelRoom{},
		&models.HotelRoomType{},
		&models.Allocation{},
		&models.PaymentRecord{},
	)
	if err != nil {
		log.Fatalf("Error running migrations: %s\n", err.Error())
	}
}

func initScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Fatalf("Error initializing scheduler: %s\n", err.Error())
	}
	sweeper := services.NewExpirySweeper(db.GetDb(), config.AllocationTimeout())
	if err := sweeper.Start(); err != nil {
		log.Fatalf("Error starting expiry sweeper: %s\n", err.Error())
	}
	sched.Start()
}

func initLogger() {
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	gin.ForceConsoleColor()

	f, _ := os.Create(apiLogs)
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func main() {
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}
	initLogger()

	initDb()
	initScheduler()

	router := setupRouter()

	appHost := os.Getenv("APP_HOST")
	if apiEnv == "local" {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "PUT", "DELETE", "HEAD")
		cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
		cc.AllowOriginFunc = func(origin string) bool {
			match, _ := regexp.MatchString(appHost, origin)
			return match
		}
		cc.AllowCredentials = true
		cc.AllowAllOrigins = false
		router.Use(cors.New(cc))
	}

	registerValidators()

	router.Run(":9090")
}
