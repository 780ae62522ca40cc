package index

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/antgroup/ragqa/rag"
	"github.com/antgroup/ragqa/rag/loader"
	"github.com/tidwall/match"
)

// BaseDocuments 读取 BasePath 指向的文件。BasePath 可以是单个文件、目录或带通配符的文件名；
// 目录中不支持的格式会被跳过，单个文件格式不支持时直接报错
func BaseDocuments(_ context.Context, args *rag.WorkflowContext) error {
	l := loader.New(loader.WithLogger(args.Config.Logger))

	paths, err := resolvePaths(args)
	if err != nil {
		return err
	}
	for _, path := range paths {
		docs, err := l.Load(path)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			doc.Id = id(fmt.Sprintf("%s#%d", doc.Source, doc.Page))
			doc.TextUnitIds = []string{}
		}
		args.Documents = append(args.Documents, docs...)
	}
	if len(args.Documents) == 0 {
		return fmt.Errorf("no text found in %s", args.BasePath)
	}
	return nil
}

func resolvePaths(args *rag.WorkflowContext) ([]string, error) {
	if match.IsPattern(filepath.Base(args.BasePath)) {
		return loader.Match(filepath.Dir(args.BasePath), filepath.Base(args.BasePath))
	}

	stat, err := os.Stat(args.BasePath)
	if err != nil {
		return nil, errors.New(
			"failed to stat workflow files, err: " + err.Error())
	}
	if !stat.IsDir() {
		return []string{args.BasePath}, nil
	}

	supported := make(map[string]bool)
	for _, ext := range loader.New().Supported() {
		supported[ext] = true
	}

	paths := make([]string, 0)
	err = filepath.WalkDir(args.BasePath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !supported[lowerExt(path)] {
			args.Config.Logger.Warn().Str("path", path).Msg("skip unsupported file")
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	return paths, err
}
