package repository

import (
	"Fanboard/internal/api/dto"
	"Fanboard/internal/pkg/consts"
	fbminio "Fanboard/internal/pkg/minio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
)

// ErrHistoryNotFound 指定日期没有归档
var ErrHistoryNotFound = errors.New("history artifact not found")

// HistoryRepo 每日名单归档，同一天只保留第一次写入的内容
type HistoryRepo interface {
	WriteIfAbsent(ctx context.Context, artifact *dto.HistoryArtifact) (bool, error)
	Read(ctx context.Context, date time.Time) (*dto.HistoryArtifact, error)
}

func historyName(date string) string {
	return date + ".json"
}

type fsHistoryRepoImpl struct {
	dir string
}

// NewFSHistoryRepo 本地目录归档，文件名为 <YYYY-MM-DD>.json
func NewFSHistoryRepo(dir string) (HistoryRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history dir: %w", err)
	}
	return &fsHistoryRepoImpl{dir: dir}, nil
}

// WriteIfAbsent 先写临时文件再硬链接到目标路径；目标已存在时 Link 失败，保证先写者胜出且不会出现半个文件
func (r *fsHistoryRepoImpl) WriteIfAbsent(_ context.Context, artifact *dto.HistoryArtifact) (bool, error) {
	target := filepath.Join(r.dir, historyName(artifact.Date))
	if _, err := os.Stat(target); err == nil {
		return false, nil
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return false, err
	}

	tmp, err := os.CreateTemp(r.dir, "."+artifact.Date+"-*.tmp")
	if err != nil {
		return false, err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return false, err
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return false, err
	}
	if err = tmp.Close(); err != nil {
		return false, err
	}

	if err = os.Link(tmpName, target); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *fsHistoryRepoImpl) Read(_ context.Context, date time.Time) (*dto.HistoryArtifact, error) {
	data, err := os.ReadFile(filepath.Join(r.dir, historyName(date.Format(consts.HistoryDateLayout))))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrHistoryNotFound
		}
		return nil, err
	}
	var artifact dto.HistoryArtifact
	if err = json.Unmarshal(data, &artifact); err != nil {
		return nil, err
	}
	return &artifact, nil
}

type minioHistoryRepoImpl struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinIOHistoryRepo 对象存储归档，对象名为 <prefix><YYYY-MM-DD>.json
// 写入前先 StatObject 判断是否存在，上传带 If-None-Match: * 条件，多个进程同一天也只有第一份生效
func NewMinIOHistoryRepo(client *minio.Client, bucket, prefix string) HistoryRepo {
	return &minioHistoryRepoImpl{client: client, bucket: bucket, prefix: prefix}
}

func (r *minioHistoryRepoImpl) objectName(date string) string {
	return path.Join(r.prefix, historyName(date))
}

func (r *minioHistoryRepoImpl) WriteIfAbsent(ctx context.Context, artifact *dto.HistoryArtifact) (bool, error) {
	name := r.objectName(artifact.Date)

	_, err := r.client.StatObject(ctx, r.bucket, name, minio.StatObjectOptions{})
	if err == nil {
		return false, nil
	}
	if !fbminio.IsNotFound(err) {
		return false, fmt.Errorf("failed to stat history object: %w", err)
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return false, err
	}

	// Stat 与 Put 之间可能有其他进程写入，由 If-None-Match 兜底
	_, err = r.client.PutObject(ctx, r.bucket, name, bytes.NewReader(data), int64(len(data)), historyPutOptions())
	if err != nil {
		if fbminio.IsPreconditionFailed(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to upload history object: %w", err)
	}
	return true, nil
}

// historyPutOptions 仅在对象不存在时写入
func historyPutOptions() minio.PutObjectOptions {
	opts := minio.PutObjectOptions{ContentType: "application/json"}
	opts.SetMatchETagExcept("*")
	return opts
}

func (r *minioHistoryRepoImpl) Read(ctx context.Context, date time.Time) (*dto.HistoryArtifact, error) {
	obj, err := r.client.GetObject(ctx, r.bucket, r.objectName(date.Format(consts.HistoryDateLayout)), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if fbminio.IsNotFound(err) {
			return nil, ErrHistoryNotFound
		}
		return nil, err
	}
	var artifact dto.HistoryArtifact
	if err = json.Unmarshal(data, &artifact); err != nil {
		return nil, err
	}
	return &artifact, nil
}
