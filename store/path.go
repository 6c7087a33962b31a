package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// 网络数据的位置：本地文件或者mongo的{db}.{coll}
type Path struct {
	File string
	DB   string
	Coll string
}

// 空字符串返回nil
func NewPath(filePathOrColl string) (*Path, error) {
	// 检查filePathOrColl是否作为文件存在
	if _, err := os.Stat(filePathOrColl); err == nil {
		return &Path{
			File: filePathOrColl,
		}, nil
	}
	if strings.TrimSpace(filePathOrColl) == "" {
		return nil, nil
	}
	return NewCollPath(filePathOrColl)
}

// 只接受{db}.{coll}，不访问本地文件
func NewCollPath(dbDotColl string) (*Path, error) {
	dbDotColl = strings.TrimSpace(dbDotColl)
	splitted := strings.Split(dbDotColl, ".")
	if len(splitted) != 2 || splitted[0] == "" || splitted[1] == "" ||
		strings.ContainsAny(dbDotColl, `/\ "$`) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, dbDotColl)
	}
	return &Path{
		DB:   splitted[0],
		Coll: splitted[1],
	}, nil
}

func (p *Path) IsFile() bool {
	return p.File != ""
}

func (p *Path) String() string {
	if p.IsFile() {
		return p.File
	}
	return p.DB + "." + p.Coll
}

// 缓存文件名，文件路径时返回其绝对路径
func (p *Path) GetCachePath() (string, error) {
	if p.IsFile() {
		return filepath.Abs(p.File)
	}
	return p.DB + "." + p.Coll + ".json", nil
}
