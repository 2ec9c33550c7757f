package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/any-hub/cacheup/internal/cache"
	"github.com/any-hub/cacheup/internal/logging"
	"github.com/any-hub/cacheup/internal/remote"
)

// Setter 抽象远端 SET 命令，测试中可替换为记录调用的实现。
type Setter interface {
	Set(ctx context.Context, key, value string) (*remote.Reply, error)
}

// Options 汇总 Uploader 的依赖。
type Options struct {
	Store  cache.Store
	Remote Setter
	Skip   cache.SkipSet
	Logger *logrus.Logger
	Report io.Writer
}

// Uploader 顺序处理缓存条目：跳过 → 读取 → 校验 → 上传 → 报告。
type Uploader struct {
	store  cache.Store
	remote Setter
	skip   cache.SkipSet
	logger *logrus.Logger
	report io.Writer
}

// New 校验依赖并构建 Uploader。
func New(opts Options) (*Uploader, error) {
	if opts.Store == nil {
		return nil, errors.New("cache store is required")
	}
	if opts.Remote == nil {
		return nil, errors.New("remote client is required")
	}
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if opts.Report == nil {
		opts.Report = io.Discard
	}
	return &Uploader{
		store:  opts.Store,
		remote: opts.Remote,
		skip:   opts.Skip,
		logger: opts.Logger,
		report: opts.Report,
	}, nil
}

// Summary 统计一次运行中各状态的条目数，只用于日志，不影响退出码。
type Summary struct {
	RunID   string
	Total   int
	Counts  map[Kind]int
	Bytes   int
	Elapsed time.Duration
}

// Count 返回某状态的条目数。
func (s Summary) Count(k Kind) int {
	return s.Counts[k]
}

// Failed 返回失败条目总数。
func (s Summary) Failed() int {
	total := 0
	for k, n := range s.Counts {
		if k.Failed() {
			total += n
		}
	}
	return total
}

func (s Summary) fields() logrus.Fields {
	fields := logrus.Fields{
		"action":     "upload_done",
		"run_id":     s.RunID,
		"total":      s.Total,
		"failed":     s.Failed(),
		"bytes":      s.Bytes,
		"elapsed_ms": s.Elapsed.Milliseconds(),
	}
	for k, n := range s.Counts {
		fields[k.String()] = n
	}
	return fields
}

// Run 列举全部条目后逐个处理，每个条目向报告写一行，最后写 "Done."。
// 单个条目的失败不会中断运行；只有列举失败才返回 error。
func (u *Uploader) Run(ctx context.Context) (Summary, error) {
	started := time.Now()
	summary := Summary{
		RunID:  uuid.NewString(),
		Counts: make(map[Kind]int),
	}

	entries, err := u.store.List(ctx)
	if err != nil {
		return summary, fmt.Errorf("列举缓存目录失败: %w", err)
	}

	u.logger.WithFields(logrus.Fields{
		"action":   "upload_start",
		"run_id":   summary.RunID,
		"entries":  len(entries),
		"skip_set": u.skip.Len(),
	}).Info("开始上传缓存")

	for _, entry := range entries {
		outcome := u.Process(ctx, entry)
		fmt.Fprintln(u.report, outcome.Line())
		u.logOutcome(summary.RunID, outcome)

		summary.Total++
		summary.Counts[outcome.Kind]++
		if outcome.Kind == KindUploaded {
			summary.Bytes += outcome.Bytes
		}
	}

	fmt.Fprintln(u.report)
	fmt.Fprintln(u.report, "Done.")

	summary.Elapsed = time.Since(started)
	u.logger.WithFields(summary.fields()).Info("缓存上传结束")
	return summary, nil
}

// Process 处理单个条目并返回其最终状态，不写报告。
func (u *Uploader) Process(ctx context.Context, entry cache.Entry) Outcome {
	if u.skip.Contains(entry.Rel()) {
		return Outcome{Kind: KindSkipped, Key: entry.Key}
	}

	raw, err := u.store.Read(ctx, entry)
	if err != nil {
		return Outcome{Kind: KindFailed, Key: entry.Key, Err: err}
	}
	if raw == "" {
		return Outcome{Kind: KindEmpty, Key: entry.Key}
	}

	value, err := Canonicalize(raw)
	if err != nil {
		return Outcome{Kind: KindInvalidJSON, Key: entry.Key, Err: err}
	}

	reply, err := u.remote.Set(ctx, entry.Key, value)
	if err != nil {
		var httpErr *remote.HTTPError
		if errors.As(err, &httpErr) {
			return Outcome{Kind: KindHTTPError, Key: entry.Key, Err: httpErr}
		}
		return Outcome{Kind: KindFailed, Key: entry.Key, Err: err}
	}
	if !reply.OK() {
		return Outcome{Kind: KindRejected, Key: entry.Key, Reply: reply}
	}
	return Outcome{Kind: KindUploaded, Key: entry.Key, Bytes: len(value), Reply: reply}
}

func (u *Uploader) logOutcome(runID string, o Outcome) {
	fields := logging.EntryFields(runID, o.Key, o.Kind.Status())
	fields["kind"] = o.Kind.String()

	switch {
	case o.Kind == KindUploaded:
		fields["bytes"] = o.Bytes
		u.logger.WithFields(fields).Debug("entry_uploaded")
	case o.Kind == KindRejected:
		fields["reply"] = o.Reply.String()
		u.logger.WithFields(fields).Warn("entry_rejected")
	case o.Kind.Failed():
		u.logger.WithFields(fields).WithError(o.Err).Warn("entry_failed")
	default:
		u.logger.WithFields(fields).Debug("entry_skipped")
	}
}
