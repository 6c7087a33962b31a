package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.fiblab.net/sim/transit/config"
	"git.fiblab.net/sim/transit/request"
	"git.fiblab.net/sim/transit/store"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

var (
	// 配置信息
	configPath = flag.String("config", "", "yaml config file path (empty means defaults)")
	inputPath  = flag.String("input", "-", "batch input document path, - means stdin")
	basePath   = flag.String("base", "", "network base requests [format: {fspath} or {db}.{col}]")
	mongoURI   = flag.String("mongo_uri", "", "mongo db uri (default $MONGO_URI)")
	cacheDir   = flag.String("cache", "", "input cache dir path (empty means disable cache)")
	format     = flag.String("format", "json", "batch input/output format [json, text]")
	serve      = flag.Bool("serve", false, "serve queries over connect instead of answering one batch")
	seed       = flag.Bool("seed", false, "upload the base requests of -input to the -base {db}.{col} and exit")
	listen     = flag.String("listen", "localhost:52101", "connect listening address")
	logLevel   = flag.String("log-level", "info", "log level [debug, info, warn, error, fatal, panic]")

	// 性能测试
	benchmark = flag.Bool("benchmark", false, "benchmark mode")
	pprofAddr = flag.String("pprof", "", "pprof listening address (empty means disable)")

	LOG_LEVELS = map[string]logrus.Level{
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"fatal": logrus.FatalLevel,
		"panic": logrus.PanicLevel,
	}
)

// 命令行中显式给出的参数覆盖配置文件
func applyFlags(cfg *config.AppConfig) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "base":
			cfg.Base = *basePath
		case "mongo_uri":
			cfg.MongoURI = *mongoURI
		case "cache":
			cfg.CacheDir = *cacheDir
		case "format":
			cfg.Format = *format
		case "listen":
			cfg.Listen = *listen
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if cfg.MongoURI == "" {
		cfg.MongoURI = os.Getenv("MONGO_URI")
	}
}

func main() {
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	flag.Parse()
	// .env可选
	if err := godotenv.Load(); err == nil {
		log.Debug("loaded .env")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	applyFlags(&cfg)
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid config: %v", err)
	}
	if level, ok := LOG_LEVELS[cfg.LogLevel]; ok {
		logrus.SetLevel(level)
	} else {
		logrus.Fatalf("invalid log level: %s", cfg.LogLevel)
	}

	if *pprofAddr != "" {
		// 启动pprof
		startHTTPDebugger(*pprofAddr)
	}

	if !*serve && !*benchmark {
		input, err := openInput(*inputPath)
		if err != nil {
			log.Fatalf("failed to open input: %v", err)
		}
		defer input.Close()
		if *seed {
			if err := runSeed(context.Background(), cfg, input); err != nil {
				log.Fatalf("seed failed: %v", err)
			}
			return
		}
		if err := runBatch(context.Background(), cfg, input, os.Stdout); err != nil {
			log.Fatalf("batch failed: %v", err)
		}
		return
	}

	server, err := newServer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to start server: %v", err)
	}

	if *benchmark {
		// 性能测试
		runBenchmark(server)
		return
	}

	// 使用HTTP/2 w.o. TLS
	s := &http.Server{
		Addr:    cfg.Listen,
		Handler: h2c.NewHandler(server.Handler(), &http2.Server{}),
	}

	// 优雅退出
	// 创建监听退出chan
	signalCh := make(chan os.Signal, 1)
	//监听指定信号 ctrl+c kill
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalCh
		log.Info("stopping...")
		go func() {
			<-signalCh
			os.Exit(1) // 强制结束
		}()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.Shutdown(ctx)
	}()

	log.Infof("server listening at %v", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("failed to serve: %v", err)
	}
	log.Info("transit closes")
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// 按配置读取网络的构建请求：文件、缓存或mongo
func loadBaseRequests(ctx context.Context, cfg config.AppConfig, path *store.Path) ([]request.BaseRequest, error) {
	return store.LoadWithCache(cfg.CacheDir, path, func() ([]request.BaseRequest, error) {
		return store.LoadFromMongo(ctx, cfg.MongoURI, path)
	})
}

func readDocument(format string, r io.Reader) (*request.Document, error) {
	switch format {
	case "json":
		return request.Load(r)
	case "text":
		return request.ReadText(r)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// 将输入文档中的构建请求写入mongo，供服务启动时读取
func runSeed(ctx context.Context, cfg config.AppConfig, r io.Reader) error {
	doc, err := readDocument(cfg.Format, r)
	if err != nil {
		return err
	}
	// 先检查能否构建
	if _, err := request.BuildCatalogue(doc.BaseRequests); err != nil {
		return err
	}
	path, err := store.NewPath(cfg.Base)
	if err != nil {
		return err
	}
	if path == nil || path.IsFile() {
		return fmt.Errorf("%w: seed needs -base {db}.{col}", store.ErrInvalidPath)
	}
	if err := store.SaveToMongo(ctx, cfg.MongoURI, path, doc.BaseRequests); err != nil {
		return err
	}
	log.Infof("seeded %d base requests into %s", len(doc.BaseRequests), path)
	return nil
}

// 读取一个输入文档，构建网络并输出全部应答
// cfg.Base非空时其中的构建请求排在文档自带的之前
func runBatch(ctx context.Context, cfg config.AppConfig, r io.Reader, w io.Writer) error {
	doc, err := readDocument(cfg.Format, r)
	if err != nil {
		return err
	}
	path, err := store.NewPath(cfg.Base)
	if err != nil {
		return err
	}
	if path != nil {
		base, err := loadBaseRequests(ctx, cfg, path)
		if err != nil {
			return err
		}
		doc.BaseRequests = append(base, doc.BaseRequests...)
	}
	h, err := request.Build(doc, cfg.Routing, cfg.Render)
	if err != nil {
		return err
	}
	if cfg.Format == "text" {
		return request.WriteText(w, h, doc.StatRequests)
	}
	return request.WriteJSON(w, h.AnswerAll(doc.StatRequests))
}

// cfg.Base为空时服务启动后需要先调用Reload
func newServer(ctx context.Context, cfg config.AppConfig) (*TransitServer, error) {
	path, err := store.NewPath(cfg.Base)
	if err != nil {
		return nil, err
	}
	if path == nil {
		log.Warn("no base network given, waiting for Reload")
		return NewTransitServer(cfg, nil), nil
	}
	reqs, err := loadBaseRequests(ctx, cfg, path)
	if err != nil {
		return nil, fmt.Errorf("load base requests from %s: %w", path, err)
	}
	h, err := request.Build(&request.Document{BaseRequests: reqs}, cfg.Routing, cfg.Render)
	if err != nil {
		return nil, err
	}
	return NewTransitServer(cfg, h), nil
}
