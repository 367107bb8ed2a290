// Package expert holds the fixed catalog of domain experts the secretary can route to.
// The catalog is data: ids are dense, ordered and never change at runtime.
package expert

import (
	"fmt"
	"strings"
	"toni/domain"

	"github.com/samber/lo"
)

type Expert struct {
	ID          int
	Name        string
	Description string
	// WideAngle marks experts whose subject is usually a whole scene.
	WideAngle bool
}

const (
	DefaultID   = 6
	DefaultName = "general_engineer"
)

const menuHeader = "【请分析用户意图，从下方列表中选择最合适的一个 ID】"

var catalog = []Expert{
	{ID: 0, Name: "chat_only", Description: "无需专家，仅进行日常闲聊、问候、撒娇或情感互动"},
	{ID: 1, Name: "psychology", Description: "心理咨询、情感分析、聊天记录解读、情绪安抚"},
	{ID: 2, Name: "mckinsey", Description: "商业策略、职场生存、PPT优化、效率管理、赚钱逻辑"},
	{ID: 3, Name: "medical", Description: "医疗咨询、药物说明书解读、化验单分析 (非临床诊断)"},
	{ID: 4, Name: "legal", Description: "法律咨询、合同风险审查、侵权责任判定"},
	{ID: 5, Name: "tutor", Description: "作业辅导、题目讲解、作文批改、知识点解析 (各学科)"},
	{ID: 6, Name: "general_engineer", Description: "硬件维修、机械故障、家电修理、物理电路"},
	{ID: 7, Name: "code_engineer", Description: "代码Debug、编程指导、软件架构、算法优化"},
	{ID: 8, Name: "data_analyst", Description: "数据分析、Excel报表解读、趋势预测、图表洞察"},
	{ID: 9, Name: "fashion", Description: "时尚设计、穿搭打分、剪裁面料分析、潮流趋势"},
	{ID: 10, Name: "shopper", Description: "购物决策、性价比分析、真伪鉴别、产品对比、避坑指南"},
	{ID: 11, Name: "finance", Description: "个人理财、税务规划、投资建议、省钱规划"},
	{ID: 12, Name: "chef", Description: "食材识别、烹饪菜谱、营养搭配、美食点评"},
	{ID: 13, Name: "pet_expert", Description: "宠物行为分析、猫狗疾病初筛、饲养建议"},
	{ID: 14, Name: "parenting", Description: "育儿建议、家庭教育、青少年心理、亲子关系 (非解题)"},
	{ID: 15, Name: "fengshui", Description: "家居风水布局、环境气场分析、开运建议", WideAngle: true},
	{ID: 16, Name: "translator", Description: "多语言精准翻译、跨文化交流、外语学习"},
	{ID: 17, Name: "detective", Description: "微观细节观察、照片定位、逻辑推理、寻物", WideAngle: true},
	{ID: 18, Name: "travel", Description: "旅游攻略、景点识别、行程规划、交通建议", WideAngle: true},
	{ID: 19, Name: "writer", Description: "文案润色、公文写作、创意写作、剧本大纲"},
	{ID: 20, Name: "fitness", Description: "健身动作指导、训练计划、肌肉解剖、运动康复"},
}

var byName = lo.KeyBy(catalog, func(e Expert) string { return e.Name })

// Describe returns the catalog in ascending id order.
func Describe() []Expert {
	out := make([]Expert, len(catalog))
	copy(out, catalog)
	return out
}

func Default() Expert {
	return catalog[DefaultID]
}

// Lookup is an exact, case-sensitive match on the expert name.
func Lookup(name string) (Expert, bool) {
	e, ok := byName[name]
	return e, ok
}

// Resolve never fails: unknown names map to the default expert.
func Resolve(name string) Expert {
	if e, ok := byName[name]; ok {
		return e
	}
	return Default()
}

func NameForID(id int) string {
	if id < 0 || id >= len(catalog) {
		return DefaultName
	}
	return catalog[id].Name
}

func IDForName(name string) int {
	return Resolve(name).ID
}

// DefaultCamera is the framing used when the model gives no explicit directive.
func DefaultCamera(name string) domain.CameraDirective {
	if e, ok := byName[name]; ok && e.WideAngle {
		return domain.CameraWide
	}
	return domain.CameraNormal
}

// MenuText renders the selection menu embedded into the secretary prompt.
func MenuText() string {
	var sb strings.Builder
	sb.WriteString(menuHeader)
	for _, e := range catalog {
		fmt.Fprintf(&sb, "\n%d. %s (%s)", e.ID, e.Name, e.Description)
	}
	return sb.String()
}
