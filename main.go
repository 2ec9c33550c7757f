package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/any-hub/cacheup/internal/cache"
	"github.com/any-hub/cacheup/internal/config"
	"github.com/any-hub/cacheup/internal/logging"
	"github.com/any-hub/cacheup/internal/remote"
	"github.com/any-hub/cacheup/internal/uploader"
	"github.com/any-hub/cacheup/internal/version"
)

// cliOptions 汇总 CLI 标志解析后的结果，便于在测试中注入。
type cliOptions struct {
	configPath  string
	checkOnly   bool
	showVersion bool
}

var (
	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr
)

func main() {
	opts, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(stdErr, err.Error())
		os.Exit(2)
	}
	os.Exit(run(opts))
}

// run 执行“配置 → 日志 → 缓存目录 → 远端客户端 → 顺序上传”，返回退出码。
// 单个文件上传失败不影响退出码，只有配置错误返回非零。
func run(opts cliOptions) int {
	if opts.showVersion {
		printVersion()
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		if errors.Is(err, config.ErrMissingCredentials) {
			fmt.Fprintf(stdOut, "Error: set %s and %s env vars\n", config.EnvRestURL, config.EnvRestToken)
			return 1
		}
		fmt.Fprintf(stdErr, "加载配置失败: %v\n", err)
		return 1
	}

	logger, err := logging.InitLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化日志失败: %v\n", err)
		return 1
	}

	fields := logging.BaseFields("startup", opts.configPath)
	fields["cache_dir"] = cfg.CacheDir
	fields["endpoint"] = cfg.Endpoint()
	fields["skip"] = len(cfg.Skip)
	fields["version"] = version.Full()

	if opts.checkOnly {
		fields["action"] = "check_config"
		fields["result"] = "ok"
		logger.WithFields(fields).Info("配置校验通过")
		return 0
	}

	store, err := cache.NewStore(cfg.CacheDir)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化缓存目录失败: %v\n", err)
		return 1
	}

	up, err := uploader.New(uploader.Options{
		Store:  store,
		Remote: remote.NewClient(cfg),
		Skip:   cache.NewSkipSet(cfg.Skip...),
		Logger: logger,
		Report: stdOut,
	})
	if err != nil {
		fmt.Fprintf(stdErr, "构建上传器失败: %v\n", err)
		return 1
	}

	logger.WithFields(fields).Info("配置加载完成")

	if _, err := up.Run(context.Background()); err != nil {
		fmt.Fprintf(stdErr, "上传中止: %v\n", err)
		return 1
	}
	return 0
}

// parseCLIFlags 解析 CLI 参数。配置文件可选，路径优先取 flag，其次 CACHEUP_CONFIG。
func parseCLIFlags(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("cacheup", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configFlag string
		checkOnly  bool
		showVer    bool
	)

	fs.StringVar(&configFlag, "config", "", "可选的 TOML 配置文件（可被 CACHEUP_CONFIG 指定）")
	fs.BoolVar(&checkOnly, "check-config", false, "仅校验配置后退出")
	fs.BoolVar(&showVer, "version", false, "显示版本信息")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, fmt.Errorf("解析参数失败: %w", err)
	}

	path := os.Getenv("CACHEUP_CONFIG")
	if configFlag != "" {
		path = configFlag
	}

	return cliOptions{
		configPath:  path,
		checkOnly:   checkOnly,
		showVersion: showVer,
	}, nil
}
