package assistant

import (
	"context"
)

// Generator 外部大模型的最小抽象:输入提示词,返回生成文本
// 设计说明:
// 1. 只有一个同步调用,可能失败或超时
// 2. 超时、熔断、限流由infrastructure/ai的实现负责,领域层只关心结果
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc 函数适配器
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate 实现Generator接口
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
