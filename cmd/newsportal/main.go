package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/harsach/newsportal/internal/ai"
	"github.com/harsach/newsportal/internal/auth"
	chathttp "github.com/harsach/newsportal/internal/chat/handler/http"
	chatsvc "github.com/harsach/newsportal/internal/chat/service"
	commenthttp "github.com/harsach/newsportal/internal/comment/handler/http"
	commentsvc "github.com/harsach/newsportal/internal/comment/service"
	commentstorage "github.com/harsach/newsportal/internal/comment/storage"
	commentmem "github.com/harsach/newsportal/internal/comment/storage/inmemory"
	commentpg "github.com/harsach/newsportal/internal/comment/storage/postgres"
	"github.com/harsach/newsportal/internal/config"
	"github.com/harsach/newsportal/internal/logging"
	notifhttp "github.com/harsach/newsportal/internal/notification/handler/http"
	notifsvc "github.com/harsach/newsportal/internal/notification/service"
	"github.com/harsach/newsportal/internal/post/cache"
	posthttp "github.com/harsach/newsportal/internal/post/handler/http"
	postsvc "github.com/harsach/newsportal/internal/post/service"
	poststorage "github.com/harsach/newsportal/internal/post/storage"
	postmem "github.com/harsach/newsportal/internal/post/storage/inmemory"
	postpg "github.com/harsach/newsportal/internal/post/storage/postgres"
	userhttp "github.com/harsach/newsportal/internal/user/handler/http"
	usermodel "github.com/harsach/newsportal/internal/user/model"
	usersvc "github.com/harsach/newsportal/internal/user/service"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFile)

	var (
		commentRepo commentstorage.Repository
		postRepo    poststorage.Repository
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("open database")
		}
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("ping database")
		}
		commentRepo = commentpg.New(db)
		postRepo = postpg.New(db)
		log.Info().Msg("using postgres storage")
	} else {
		commentRepo = commentmem.New()
		postRepo = postmem.New()
		log.Info().Msg("using in-memory storage")
	}

	var aiClient *ai.Client
	if cfg.GeminiAPIKey != "" {
		c, err := ai.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatal().Err(err).Msg("create AI client")
		}
		aiClient = c
		log.Info().Str("model", cfg.GeminiModel).Msg("AI client enabled")
	}

	users := usersvc.New()
	notifications := notifsvc.New()

	postDeps := postsvc.Deps{
		Notifier: notifications,
		Authors:  users,
	}
	if aiClient != nil {
		postDeps.Verifier = aiClient
		postDeps.Source = aiClient
	}
	if cfg.RedisAddr != "" {
		feedCache, err := cache.New(ctx, cfg.RedisAddr, log)
		if err != nil {
			log.Fatal().Err(err).Msg("connect redis")
		}
		postDeps.Cache = feedCache
		log.Info().Str("addr", cfg.RedisAddr).Msg("feed cache enabled")
	}
	posts := postsvc.New(postRepo, postDeps, log)

	var classifier commentsvc.Classifier
	var assistant chatsvc.Assistant
	if aiClient != nil {
		classifier = aiClient
		assistant = aiClient
	}
	comments := commentsvc.New(commentRepo, classifier, notifications, log)
	chats := chatsvc.New(assistant, log)

	if cfg.AdminMobile != "" {
		admin, _, err := users.Login(ctx, cfg.AdminMobile, "Admin")
		if err != nil {
			log.Fatal().Err(err).Msg("seed admin account")
		}
		if err := users.Promote(ctx, admin.ID, usermodel.RoleAdmin); err != nil {
			log.Fatal().Err(err).Msg("promote admin account")
		}
		log.Info().Str("mobile", cfg.AdminMobile).Msg("admin account ready")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"result":"ok"}`))
	})

	commenthttp.New(comments, log).Register(mux)
	posthttp.New(posts, log).Register(mux)
	userhttp.New(users, log).Register(mux)
	chathttp.New(chats, users, log).Register(mux)
	notifhttp.New(notifications).Register(mux)

	handler := auth.Middleware(users)(mux)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("listening")
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
