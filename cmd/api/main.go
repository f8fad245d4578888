package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/taskora/taskora-backend-go/internal/config"
	appHTTP "github.com/taskora/taskora-backend-go/internal/handler/http"
	"github.com/taskora/taskora-backend-go/internal/pkg/database"
	"github.com/taskora/taskora-backend-go/internal/pkg/jwt"
	"github.com/taskora/taskora-backend-go/internal/pkg/llm"
	"github.com/taskora/taskora-backend-go/internal/pkg/sse"
	"github.com/taskora/taskora-backend-go/internal/pkg/storage"
	"github.com/taskora/taskora-backend-go/internal/repository/postgresql"
	attendanceService "github.com/taskora/taskora-backend-go/internal/service/attendance"
	authService "github.com/taskora/taskora-backend-go/internal/service/auth"
	chatService "github.com/taskora/taskora-backend-go/internal/service/chat"
	fileService "github.com/taskora/taskora-backend-go/internal/service/file"
	notificationService "github.com/taskora/taskora-backend-go/internal/service/notification"
	taskService "github.com/taskora/taskora-backend-go/internal/service/task"
	userService "github.com/taskora/taskora-backend-go/internal/service/user"
	whiteboardService "github.com/taskora/taskora-backend-go/internal/service/whiteboard"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid timezone:", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	profileRepo := postgresql.NewProfileRepository(db)
	roleRepo := postgresql.NewRoleRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	fileRepo := postgresql.NewFileRepository(db)
	whiteboardRepo := postgresql.NewWhiteboardRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	hub := sse.NewHub()
	notifSvc := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{})
	defer notifSvc.Stop()

	authSvc := authService.NewAuthService(db, userRepo, profileRepo, roleRepo, jwtSvc, jwtRepo)
	userSvc := userService.NewUserService(db, userRepo, profileRepo, roleRepo, jwtRepo, notifSvc)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, profileRepo, notifSvc, location)
	taskSvc := taskService.NewTaskService(taskRepo, notifSvc)
	fileSvc := fileService.NewFileService(fileRepo, fileStorage, jwtSvc, cfg.Storage.BaseURL)
	whiteboardSvc := whiteboardService.NewWhiteboardService(whiteboardRepo)
	defer whiteboardSvc.Stop()
	chatSvc := chatService.NewChatService(llm.NewClient(cfg.Chat))

	router := appHTTP.NewRouter(cfg, jwtSvc, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(jwtSvc, authSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Task:         appHTTP.NewTaskHandler(taskSvc),
		Staff:        appHTTP.NewStaffHandler(userSvc),
		File:         appHTTP.NewFileHandler(fileSvc),
		Whiteboard:   appHTTP.NewWhiteboardHandler(whiteboardSvc),
		Notification: appHTTP.NewNotificationHandler(notifSvc, jwtSvc),
		Chat:         appHTTP.NewChatHandler(chatSvc),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
