package bible

// canon is the bundled book table in canonical order. Lookups that resolve by
// prefix depend on this order.
var canon = []Book{
	// Old Testament
	{ID: "GEN", Abbreviation: "Gen", Name: "Genesis", NameLong: "Genesis", Chapters: 50, NameChinese: "创世记", Pinyin: "chuangshiji", PinyinAbbr: "csj"},
	{ID: "EXO", Abbreviation: "Exo", Name: "Exodus", NameLong: "Exodus", Chapters: 40, NameChinese: "出埃及记", Pinyin: "chuaijiji", PinyinAbbr: "caijj"},
	{ID: "LEV", Abbreviation: "Lev", Name: "Leviticus", NameLong: "Leviticus", Chapters: 27, NameChinese: "利未记", Pinyin: "liweiji", PinyinAbbr: "lwj"},
	{ID: "NUM", Abbreviation: "Num", Name: "Numbers", NameLong: "Numbers", Chapters: 36, NameChinese: "民数记", Pinyin: "minshuji", PinyinAbbr: "msj"},
	{ID: "DEU", Abbreviation: "Deu", Name: "Deuteronomy", NameLong: "Deuteronomy", Chapters: 34, NameChinese: "申命记", Pinyin: "shenmingji", PinyinAbbr: "smj"},
	{ID: "JOS", Abbreviation: "Jos", Name: "Joshua", NameLong: "Joshua", Chapters: 24, NameChinese: "约书亚记", Pinyin: "yueshuyaji", PinyinAbbr: "jsyj"},
	{ID: "JDG", Abbreviation: "Jdg", Name: "Judges", NameLong: "Judges", Chapters: 21, NameChinese: "士师记", Pinyin: "shishiji", PinyinAbbr: "ssj"},
	{ID: "RUT", Abbreviation: "Rut", Name: "Ruth", NameLong: "Ruth", Chapters: 4, NameChinese: "路得记", Pinyin: "ludeji", PinyinAbbr: "ldj"},
	{ID: "1SA", Abbreviation: "1Sa", Name: "1 Samuel", NameLong: "1 Samuel", Chapters: 31, NameChinese: "撒母耳记上", Pinyin: "samuerjishang", PinyinAbbr: "smejs"},
	{ID: "2SA", Abbreviation: "2Sa", Name: "2 Samuel", NameLong: "2 Samuel", Chapters: 24, NameChinese: "撒母耳记下", Pinyin: "samuerjixia", PinyinAbbr: "smejx"},
	{ID: "1KI", Abbreviation: "1Ki", Name: "1 Kings", NameLong: "1 Kings", Chapters: 22, NameChinese: "列王纪上", Pinyin: "liewangjishang", PinyinAbbr: "lwjs"},
	{ID: "2KI", Abbreviation: "2Ki", Name: "2 Kings", NameLong: "2 Kings", Chapters: 25, NameChinese: "列王纪下", Pinyin: "liewangjixia", PinyinAbbr: "lwjx"},
	{ID: "1CH", Abbreviation: "1Ch", Name: "1 Chronicles", NameLong: "1 Chronicles", Chapters: 29, NameChinese: "历代志上", Pinyin: "lidaizhishang", PinyinAbbr: "ldzs"},
	{ID: "2CH", Abbreviation: "2Ch", Name: "2 Chronicles", NameLong: "2 Chronicles", Chapters: 36, NameChinese: "历代志下", Pinyin: "lidaizhixia", PinyinAbbr: "ldzx"},
	{ID: "EZR", Abbreviation: "Ezr", Name: "Ezra", NameLong: "Ezra", Chapters: 10, NameChinese: "以斯拉记", Pinyin: "yisilaji", PinyinAbbr: "yslj"},
	{ID: "NEH", Abbreviation: "Neh", Name: "Nehemiah", NameLong: "Nehemiah", Chapters: 13, NameChinese: "尼希米记", Pinyin: "niximiji", PinyinAbbr: "nxmj"},
	{ID: "EST", Abbreviation: "Est", Name: "Esther", NameLong: "Esther", Chapters: 10, NameChinese: "以斯帖记", Pinyin: "yisitieji", PinyinAbbr: "ystj"},
	{ID: "JOB", Abbreviation: "Job", Name: "Job", NameLong: "Job", Chapters: 42, NameChinese: "约伯记", Pinyin: "yueboji", PinyinAbbr: "ybj"},
	{ID: "PSA", Abbreviation: "Psa", Name: "Psalms", NameLong: "Psalms", Chapters: 150, NameChinese: "诗篇", Pinyin: "shipian", PinyinAbbr: "sp"},
	{ID: "PRO", Abbreviation: "Pro", Name: "Proverbs", NameLong: "Proverbs", Chapters: 31, NameChinese: "箴言", Pinyin: "zhenyan", PinyinAbbr: "zy"},
	{ID: "ECC", Abbreviation: "Ecc", Name: "Ecclesiastes", NameLong: "Ecclesiastes", Chapters: 12, NameChinese: "传道书", Pinyin: "chuandaoshu", PinyinAbbr: "cds"},
	{ID: "SOS", Abbreviation: "Sos", Name: "Song of Solomon", NameLong: "Song of Solomon", Chapters: 8, NameChinese: "雅歌", Pinyin: "yage", PinyinAbbr: "yg"},
	{ID: "ISA", Abbreviation: "Isa", Name: "Isaiah", NameLong: "Isaiah", Chapters: 66, NameChinese: "以赛亚书", Pinyin: "yisaiyashu", PinyinAbbr: "ysys"},
	{ID: "JER", Abbreviation: "Jer", Name: "Jeremiah", NameLong: "Jeremiah", Chapters: 52, NameChinese: "耶利米书", Pinyin: "yelimishu", PinyinAbbr: "ylms"},
	{ID: "LAM", Abbreviation: "Lam", Name: "Lamentations", NameLong: "Lamentations", Chapters: 5, NameChinese: "耶利米哀歌", Pinyin: "yelimiaige", PinyinAbbr: "ylmag"},
	{ID: "EZK", Abbreviation: "Ezk", Name: "Ezekiel", NameLong: "Ezekiel", Chapters: 48, NameChinese: "以西结书", Pinyin: "yixijieshu", PinyinAbbr: "yxjs"},
	{ID: "DAN", Abbreviation: "Dan", Name: "Daniel", NameLong: "Daniel", Chapters: 12, NameChinese: "但以理书", Pinyin: "danyilishu", PinyinAbbr: "dyls"},
	{ID: "HOS", Abbreviation: "Hos", Name: "Hosea", NameLong: "Hosea", Chapters: 14, NameChinese: "何西阿书", Pinyin: "hexiashu", PinyinAbbr: "hxas"},
	{ID: "JOL", Abbreviation: "Jol", Name: "Joel", NameLong: "Joel", Chapters: 3, NameChinese: "约珥书", Pinyin: "yueershu", PinyinAbbr: "yes"},
	{ID: "AMO", Abbreviation: "Amo", Name: "Amos", NameLong: "Amos", Chapters: 9, NameChinese: "阿摩司书", Pinyin: "amosishu", PinyinAbbr: "amss"},
	{ID: "OBA", Abbreviation: "Oba", Name: "Obadiah", NameLong: "Obadiah", Chapters: 1, NameChinese: "俄巴底亚书", Pinyin: "ebadiyashu", PinyinAbbr: "ebdys"},
	{ID: "JON", Abbreviation: "Jon", Name: "Jonah", NameLong: "Jonah", Chapters: 4, NameChinese: "约拿书", Pinyin: "yuenashu", PinyinAbbr: "yns"},
	{ID: "MIC", Abbreviation: "Mic", Name: "Micah", NameLong: "Micah", Chapters: 7, NameChinese: "弥迦书", Pinyin: "mijiashu", PinyinAbbr: "mjs"},
	{ID: "NAH", Abbreviation: "Nah", Name: "Nahum", NameLong: "Nahum", Chapters: 3, NameChinese: "那鸿书", Pinyin: "nahongshu", PinyinAbbr: "nhs"},
	{ID: "HAB", Abbreviation: "Hab", Name: "Habakkuk", NameLong: "Habakkuk", Chapters: 3, NameChinese: "哈巴谷书", Pinyin: "habagushu", PinyinAbbr: "hbgs"},
	{ID: "ZEP", Abbreviation: "Zep", Name: "Zephaniah", NameLong: "Zephaniah", Chapters: 3, NameChinese: "西番雅书", Pinyin: "xifanyashu", PinyinAbbr: "xfys"},
	{ID: "HAG", Abbreviation: "Hag", Name: "Haggai", NameLong: "Haggai", Chapters: 2, NameChinese: "哈该书", Pinyin: "hagaishu", PinyinAbbr: "hgs"},
	{ID: "ZEC", Abbreviation: "Zec", Name: "Zechariah", NameLong: "Zechariah", Chapters: 14, NameChinese: "撒迦利亚书", Pinyin: "sajialiyashu", PinyinAbbr: "sjlys"},
	{ID: "MAL", Abbreviation: "Mal", Name: "Malachi", NameLong: "Malachi", Chapters: 4, NameChinese: "玛拉基书", Pinyin: "malajishu", PinyinAbbr: "mljs"},
	// New Testament
	{ID: "MAT", Abbreviation: "Mat", Name: "Matthew", NameLong: "Matthew", Chapters: 28, NameChinese: "马太福音", Pinyin: "mataifoyin", PinyinAbbr: "mtfy"},
	{ID: "MRK", Abbreviation: "Mrk", Name: "Mark", NameLong: "Mark", Chapters: 16, NameChinese: "马可福音", Pinyin: "makefoyin", PinyinAbbr: "mkfy"},
	{ID: "LUK", Abbreviation: "Luk", Name: "Luke", NameLong: "Luke", Chapters: 24, NameChinese: "路加福音", Pinyin: "lujiafoyin", PinyinAbbr: "ljfy"},
	{ID: "JHN", Abbreviation: "Jhn", Name: "John", NameLong: "John", Chapters: 21, NameChinese: "约翰福音", Pinyin: "yuehanfoyin", PinyinAbbr: "yhfy"},
	{ID: "ACT", Abbreviation: "Act", Name: "Acts", NameLong: "Acts", Chapters: 28, NameChinese: "使徒行传", Pinyin: "shituxingzhuan", PinyinAbbr: "stxz"},
	{ID: "ROM", Abbreviation: "Rom", Name: "Romans", NameLong: "Romans", Chapters: 16, NameChinese: "罗马书", Pinyin: "luomashu", PinyinAbbr: "lms"},
	{ID: "1CO", Abbreviation: "1Co", Name: "1 Corinthians", NameLong: "1 Corinthians", Chapters: 16, NameChinese: "哥林多前书", Pinyin: "gelinduoqianshu", PinyinAbbr: "gldqs"},
	{ID: "2CO", Abbreviation: "2Co", Name: "2 Corinthians", NameLong: "2 Corinthians", Chapters: 13, NameChinese: "哥林多后书", Pinyin: "gelinduohoushu", PinyinAbbr: "gldhs"},
	{ID: "GAL", Abbreviation: "Gal", Name: "Galatians", NameLong: "Galatians", Chapters: 6, NameChinese: "加拉太书", Pinyin: "jialatashu", PinyinAbbr: "jlts"},
	{ID: "EPH", Abbreviation: "Eph", Name: "Ephesians", NameLong: "Ephesians", Chapters: 6, NameChinese: "以弗所书", Pinyin: "yifusuoshu", PinyinAbbr: "yfss"},
	{ID: "PHP", Abbreviation: "Php", Name: "Philippians", NameLong: "Philippians", Chapters: 4, NameChinese: "腓立比书", Pinyin: "feilibishu", PinyinAbbr: "flbs"},
	{ID: "COL", Abbreviation: "Col", Name: "Colossians", NameLong: "Colossians", Chapters: 4, NameChinese: "歌罗西书", Pinyin: "geluoxishu", PinyinAbbr: "glxs"},
	{ID: "1TH", Abbreviation: "1Th", Name: "1 Thessalonians", NameLong: "1 Thessalonians", Chapters: 5, NameChinese: "帖撒罗尼迦前书", Pinyin: "tiesaluonijiaqianshu", PinyinAbbr: "tslnjqs"},
	{ID: "2TH", Abbreviation: "2Th", Name: "2 Thessalonians", NameLong: "2 Thessalonians", Chapters: 3, NameChinese: "帖撒罗尼迦后书", Pinyin: "tiesaluonijiahoushu", PinyinAbbr: "tslnjhs"},
	{ID: "1TI", Abbreviation: "1Ti", Name: "1 Timothy", NameLong: "1 Timothy", Chapters: 6, NameChinese: "提摩太前书", Pinyin: "timotaiqianshu", PinyinAbbr: "tmtqs"},
	{ID: "2TI", Abbreviation: "2Ti", Name: "2 Timothy", NameLong: "2 Timothy", Chapters: 4, NameChinese: "提摩太后书", Pinyin: "timotaihoushu", PinyinAbbr: "tmths"},
	{ID: "TIT", Abbreviation: "Tit", Name: "Titus", NameLong: "Titus", Chapters: 3, NameChinese: "提多书", Pinyin: "tiduoshu", PinyinAbbr: "tds"},
	{ID: "PHM", Abbreviation: "Phm", Name: "Philemon", NameLong: "Philemon", Chapters: 1, NameChinese: "腓利门书", Pinyin: "feillimenshu", PinyinAbbr: "flms"},
	{ID: "HEB", Abbreviation: "Heb", Name: "Hebrews", NameLong: "Hebrews", Chapters: 13, NameChinese: "希伯来书", Pinyin: "xibolaishu", PinyinAbbr: "xbls"},
	{ID: "JAS", Abbreviation: "Jas", Name: "James", NameLong: "James", Chapters: 5, NameChinese: "雅各书", Pinyin: "yageshu", PinyinAbbr: "ygs"},
	{ID: "1PE", Abbreviation: "1Pe", Name: "1 Peter", NameLong: "1 Peter", Chapters: 5, NameChinese: "彼得前书", Pinyin: "bideqianshu", PinyinAbbr: "bdqs"},
	{ID: "2PE", Abbreviation: "2Pe", Name: "2 Peter", NameLong: "2 Peter", Chapters: 3, NameChinese: "彼得后书", Pinyin: "bidehoushu", PinyinAbbr: "bdhs"},
	{ID: "1JN", Abbreviation: "1Jn", Name: "1 John", NameLong: "1 John", Chapters: 5, NameChinese: "约翰一书", Pinyin: "yuehanyishu", PinyinAbbr: "yhys"},
	{ID: "2JN", Abbreviation: "2Jn", Name: "2 John", NameLong: "2 John", Chapters: 1, NameChinese: "约翰二书", Pinyin: "yuehanershu", PinyinAbbr: "yhes"},
	{ID: "3JN", Abbreviation: "3Jn", Name: "3 John", NameLong: "3 John", Chapters: 1, NameChinese: "约翰三书", Pinyin: "yuehansanshu", PinyinAbbr: "yhss"},
	{ID: "JUD", Abbreviation: "Jud", Name: "Jude", NameLong: "Jude", Chapters: 1, NameChinese: "犹大书", Pinyin: "youdashu", PinyinAbbr: "yds"},
	{ID: "REV", Abbreviation: "Rev", Name: "Revelation", NameLong: "Revelation", Chapters: 22, NameChinese: "启示录", Pinyin: "qishilu", PinyinAbbr: "qsl"},
}
