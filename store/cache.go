package store

import (
	"fmt"
	"os"
	"path/filepath"

	"git.fiblab.net/sim/transit/request"
	"github.com/goccy/go-json"
)

// 带本地缓存的读取
// 1. 文件路径：直接读取文件
// 2. {db}.{coll}：cacheDir非空且缓存存在时读缓存，否则调用download并写入缓存
func LoadWithCache(
	cacheDir string, p *Path,
	download func() ([]request.BaseRequest, error),
) ([]request.BaseRequest, error) {
	if p.IsFile() {
		return readCache(p.File)
	}
	if cacheDir == "" {
		return download()
	}
	name, err := p.GetCachePath()
	if err != nil {
		return nil, err
	}
	cachePath := filepath.Join(cacheDir, name)
	if _, err := os.Stat(cachePath); err == nil {
		log.Infof("load %s from cache %s", p, cachePath)
		return readCache(cachePath)
	}
	reqs, err := download()
	if err != nil {
		return nil, err
	}
	if err := writeCache(cachePath, reqs); err != nil {
		// 缓存失败不影响结果
		log.Warnf("failed to write cache %s: %v", cachePath, err)
	}
	return reqs, nil
}

func readCache(path string) ([]request.BaseRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	reqs := make([]request.BaseRequest, 0)
	if err := json.Unmarshal(data, &reqs); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", request.ErrMalformedRequest, path, err)
	}
	return reqs, nil
}

func writeCache(path string, reqs []request.BaseRequest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(reqs)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
