package feed

// DefaultTitles is the caption table items are sampled from.
var DefaultTitles = []string{
	"高效学习的5个技巧", "旅行必备清单", "如何做一杯完美咖啡", "健身入门指南",
	"极简生活实践", "手机摄影技巧", "时间管理术", "在家做面包", "烹饪新手指南",
	"阅读习惯养成", "职场沟通技巧", "个人理财基础",
	"3分钟掌握高效学习法，成绩翻倍不是梦！",
	"出发前必看！这份旅行清单让你少带10斤行李",
	"手冲咖啡小白也能秒变咖啡师，秘诀就在这杯里",
	"零基础健身计划：7天打造自律身材",
	"扔掉90%的东西后，我的生活轻松了10倍",
	"不用单反！用手机拍出杂志级大片的5个技巧",
	"每天多出2小时？这套时间管理法太狠了",
	"不用烤箱也能做！松软拉丝的面包在家搞定",
	"厨房小白逆袭指南：5道菜征服全家味蕾",
	"从翻不开一页到一年读50本，我是这样爱上阅读的",
	"说话让人舒服，是职场最被低估的能力",
	"工资5000也能存钱？新手理财3步走稳赚不赔",
}

// DefaultUsernames is the author table items are sampled from.
var DefaultUsernames = []string{
	"小明", "小红", "阿强", "Lily", "老张", "小美", "Kevin", "Anna",
	"Alex", "Sophia", "Tom", "Emma",
	"星辰小明", "泡泡小红", "阿强本强", "Lily酱", "张哥在线", "小美同学",
	"Kevin呀", "安娜今天开心", "Alex不是鸭梨", "Sophia不说话", "Tom不吃鱼", "Emma有点甜",
}
