package text

// Sample returns the bundled demo document shown before anything is saved.
// It covers multi- and single-character words, punctuation, digits and
// long readings.
func Sample() Text {
	w := NewWord
	segs := []Segment{
		w("我", "wǒ"), w("現在", "xiànzài"), w("覺得", "juéde"), w("學習", "xuéxí"),
		w("知識", "zhīshì"), w("是", "shì"), w("很", "hěn"), w("重要", "zhòngyào"),
		w("的", "de"), Plain("。"),

		w("每", "měi"), w("天", "tiān"), w("閱讀", "yuèdú"), Plain(" 30 "),
		w("分鐘", "fēnzhōng"), Plain("，"), w("可以", "kěyǐ"), w("增長", "zēngzhǎng"),
		w("見識", "jiànshì"), Plain("！"),

		w("這些", "zhèxiē"), w("裝飾", "zhuāngshì"), w("和", "hé"), w("裝飾品", "zhuāngshìpǐn"),
		w("都", "dōu"), w("很", "hěn"), w("漂亮", "piàoliang"), Plain("。"),
		w("他", "tā"), w("喜歡", "xǐhuān"), w("乘風破浪", "chéngfēngpòlàng"), Plain("，"),
		w("勇往直前", "yǒngwǎngzhíqián"), Plain("。"),
	}
	t := Text{Segments: segs}
	t.RawInput = t.Content()
	return t
}
