// 从 YAML 文件导入一套测验
//
// 通过数据客户端调用正在运行的后端，适用于首次部署或演示环境。
//
// 用法: go run scripts/seed_tryout.go -file scripts/sample_tryout.yaml

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"tryout_backend/internal/authoring"
	"tryout_backend/internal/client"
	"tryout_backend/internal/config"
	"tryout_backend/internal/quiz"
	"tryout_backend/pkg/logger"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type seedQuestion struct {
	Content string `yaml:"content"`
	Answer  bool   `yaml:"answer"`
	Points  int    `yaml:"points"`
}

type seedFile struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Category    string         `yaml:"category"`
	TimeLimit   int            `yaml:"time_limit"`
	Public      bool           `yaml:"public"`
	Questions   []seedQuestion `yaml:"questions"`
}

func main() {
	file := flag.String("file", "scripts/sample_tryout.yaml", "测验 YAML 文件")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("无法读取文件: %v", err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		log.Fatalf("解析文件失败: %v", err)
	}

	api := client.NewFromConfig(cfg.Client, client.WithLogger(logger.Log))
	ed := authoring.NewEditor(api, "", authoring.WithLogger(logger.Log))
	for _, q := range seed.Questions {
		id := ed.AddQuestion()
		points := q.Points
		if points == 0 {
			points = 1
		}
		if err := ed.UpdateQuestion(id, authoring.Fields{Content: q.Content, Answer: q.Answer, Points: points}); err != nil {
			log.Fatalf("题目无效 %q: %v", q.Content, err)
		}
	}

	draft := authoring.NewDraft()
	draft.Title = seed.Title
	draft.Description = seed.Description
	draft.Category = seed.Category
	draft.IsPublic = seed.Public
	if seed.TimeLimit > 0 {
		draft.TimeLimit = seed.TimeLimit
	}

	t, err := authoring.Publish(context.Background(), api, draft, ed)
	if err != nil {
		if t != nil {
			logger.Log.Error("部分题目保存失败", zap.String("tryoutId", t.ID), zap.Error(err))
		}
		log.Fatalf("导入失败: %v", err)
	}

	full, err := api.GetTryout(context.Background(), t.ID)
	if err != nil {
		log.Fatalf("读取测验失败: %v", err)
	}
	sum := quiz.Summarize(*full, full.Questions)
	logger.Log.Info("测验导入完成",
		zap.String("tryoutId", t.ID),
		zap.Int("questions", sum.QuestionCount),
		zap.Int("totalPoints", sum.TotalPoints),
		zap.Int("avgMinutesPerQuestion", sum.AvgMinutesPerQuestion),
	)
}
