package main

import (
	"context"
	"flag"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"easyblog/internal/cache"
	"easyblog/internal/config"
	"easyblog/internal/constants"
	"easyblog/internal/handlers"
	"easyblog/internal/media"
	"easyblog/internal/repository"
	"easyblog/internal/services"
	"easyblog/internal/tasks"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// Global filesystems that will be populated by either assets_dev.go or assets_prod.go at startup.
var templatesFS fs.FS
var staticFS fs.FS

func createRenderer() multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	add := func(name string, files ...string) {
		tpl, err := template.New(files[0]).Funcs(template.FuncMap{
			"formatDate": func(t time.Time) string { return t.Format("January 2, 2006") },
		}).ParseFS(templatesFS, files...)
		if err != nil {
			log.Fatalf("Failed to parse template %s: %v", name, err)
		}
		r.Add(name, tpl)
	}

	add("index.html", "base.html", "index.html", "_cover.html")
	add("post.html", "base.html", "post.html", "_cover.html")
	add("editor.html", "base.html", "editor.html")
	add("404.html", "base.html", "404.html")
	add("error.html", "base.html", "error.html")

	return r
}

func main() {
	unsafe := flag.Bool("unsafe", false, "allow insecure cookies")
	flag.Parse()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := repository.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB: ", err)
	}

	store := repository.NewMongoStore(client, cfg.MongoDB)

	var redisCache *cache.RedisClient
	if cfg.RedisAddr != "" {
		redisCache = cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			time.Duration(cfg.CacheTTLSec)*time.Second)
		log.Println("Post cache enabled via Redis at", cfg.RedisAddr)
	}

	postService := services.NewPostService(store, redisCache)
	backupService := services.NewBackupService(postService, cfg.BackupDir, cfg.BackupPassword)
	prober := media.NewHTTPProber()

	blogHandler := handlers.NewBlogHandler(postService)
	editorHandler := handlers.NewEditorHandler(postService, prober)
	apiHandler := handlers.NewAPIHandler(postService)

	scheduler := tasks.NewScheduler(backupService, cfg.BackupCron)
	if err := scheduler.Start(); err != nil {
		log.Fatal("Failed to start backup scheduler: ", err)
	}

	r := gin.Default()
	r.HTMLRender = createRenderer()

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		HttpOnly: true,
		Secure:   !*unsafe,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionName, sessionStore))

	r.StaticFS("/static", http.FS(staticFS))

	// Blog views
	r.GET("/", blogHandler.Index)
	r.GET("/post/:id", blogHandler.ShowPost)

	// Editor
	r.GET("/editor", editorHandler.Editor)
	r.POST("/editor/save", editorHandler.SavePost)
	r.POST("/editor/delete/:id", editorHandler.DeletePost)

	// REST API
	r.GET("/posts", apiHandler.ListPosts)
	r.POST("/posts", apiHandler.CreatePost)
	r.GET("/posts/:id", apiHandler.GetPost)
	r.PUT("/posts/:id", apiHandler.UpdatePost)
	r.DELETE("/posts/:id", apiHandler.DeletePost)

	r.NoRoute(blogHandler.NotFound)

	log.Println("Server listening on", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal("Server exited: ", err)
	}
}
