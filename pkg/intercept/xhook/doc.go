// Package xhook 提供宿主操作的拦截注册表。
//
// # 设计理念
//
// 宿主通过 [Host] 接口显式暴露可拦截的操作（能力探测 + 替换），
// [Registry.Register] 把命名操作替换为带 Before/Around/Finally 钩子的
// 包装版本。包装后的操作对调用方完全透明：返回值、错误乃至 panic
// 都原样传播，钩子只允许附加副作用（span 上报、计数更新）。
//
// 关键不变量：
//
//   - 幂等：同一 target 至多应用一次，重复注册返回 false 而非报错
//    （重复初始化/重入导入不会产生嵌套包装与重复 span）
//   - 能力缺失：target 不存在于宿主时跳过包装，Debug 日志，启动不失败
//   - 钩子失败遏制：Before/Finally 中的 panic 被捕获、Warn 日志后吞掉，
//     绝不改变宿主可见的控制流
//   - 保障释放：Finally 必然执行，包括原操作 panic 的场景，
//     panic 值在 Finally 之后原样重新抛出
//
// 设计决策: 注册表核心只是互斥锁、映射与闭包，刻意不引入任何
// 运行时改写类库——拦截只发生在宿主显式定义的扩展点上。
package xhook
