package views

import (
	"net/http"

	"github.com/ecosort/ecosort/internal/ui/routes"
)

func (s *Set) newGuide() (routes.View, error) {
	return s.newView(routes.Guide, "分类指南", guideHTML, nil)
}

// quiz shows how many questions the bank holds, the questions themselves are served by the quiz backend
func (s *Set) newQuiz() (routes.View, error) {
	return s.newView(routes.Quiz, "知识答题", quizHTML, func(r *http.Request, _ routes.Params) (any, error) {
		return s.api.GetStats(r.Context())
	})
}

func (s *Set) newFeedback() (routes.View, error) {
	return s.newView(routes.Feedback, "纠错反馈", feedbackHTML, nil)
}

func (s *Set) newNearbyBins() (routes.View, error) {
	return s.newView(routes.NearbyBins, "附近垃圾站", nearbyHTML, nil)
}

func (s *Set) newNotFound() (routes.View, error) {
	return s.newView(routes.NotFound, "页面不存在", notFoundHTML, nil)
}

const guideHTML = `{{define "content"}}
<p>不同颜色的垃圾桶代表不同的垃圾类型，投放前先看清颜色。</p>
<ul class="guide">
<li style="border-color: #3498db"><strong>蓝色 可回收物</strong>：废纸、塑料、玻璃、金属和布料，投放前清洗干净、压扁。<a href="{{link "Category" "name" "可回收物"}}">查看物品</a></li>
<li style="border-color: #e74c3c"><strong>红色 有害垃圾</strong>：废电池、废灯管、过期药品等，单独收集，连同包装投放。<a href="{{link "Category" "name" "有害垃圾"}}">查看物品</a></li>
<li style="border-color: #27ae60"><strong>绿色 厨余垃圾</strong>：剩菜剩饭、果皮、菜叶等，沥干水分，去除包装。<a href="{{link "Category" "name" "厨余垃圾"}}">查看物品</a></li>
<li style="border-color: #95a5a6"><strong>灰色 其他垃圾</strong>：卫生纸、烟蒂、陶瓷碎片等，难以回收的生活废弃物。<a href="{{link "Category" "name" "其他垃圾"}}">查看物品</a></li>
</ul>
<p>拿不准的时候，<a href="{{link "Search"}}">查一查</a>。</p>
{{end}}`

const quizHTML = `{{define "content"}}
<p>题库共有 {{.QuizCount}} 道垃圾分类题目，每轮随机抽取 10 道。</p>
<p>答题前可以先复习<a href="{{link "Guide"}}">分类指南</a>和<a href="{{link "Knowledge"}}">科普知识</a>。</p>
{{end}}`

const feedbackHTML = `{{define "content"}}
<p>发现查询结果有误？请记下垃圾名称、页面给出的分类以及您认为正确的分类，联系所在社区的垃圾分类指导员核实。</p>
<p>可以先<a href="{{link "Search"}}">查询</a>一次，确认当前的分类结果。</p>
{{end}}`

const nearbyHTML = `{{define "content"}}
<p>垃圾站、环卫设施和再生资源回收点的位置请咨询所在社区或物业。</p>
<p>有害垃圾请送往指定的回收点，不要混入其他垃圾桶。不确定如何投放时，可以先看看<a href="{{link "Guide"}}">分类指南</a>。</p>
{{end}}`

const notFoundHTML = `{{define "content"}}
<p>您访问的页面不存在。</p>
<p><a href="{{link "Home"}}">返回首页</a></p>
{{end}}`
