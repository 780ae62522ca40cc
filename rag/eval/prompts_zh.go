package eval

const languageChinese = "chinese"

// LongFormAnswerZh 将答案中的句子拆分为不含代词的简单陈述
var LongFormAnswerZh = &Prompt{
	Name:                    "long_form_answer_ch",
	Instruction:             "给定一个问题、一个答案和答案中的句子，分析每个句子的复杂度，并将每个句子分解为一个或多个易于理解的陈述句，同时确保每个陈述句中不使用代词。以 JSON 格式输出结果。",
	OutputFormatInstruction: statementsOutputInstructions,
	Examples: []Example{
		{
			"question": "阿尔伯特·爱因斯坦是谁？他最著名的贡献是什么？",
			"answer":   "他是一位出生于德国的理论物理学家，被广泛认为是有史以来最伟大和最有影响力的物理学家之一。他最著名的贡献是发展了相对论，同时也为量子力学的发展做出了重要贡献。",
			"sentences": `
                0:他是一位出生于德国的理论物理学家，被广泛认为是有史以来最伟大和最有影响力的物理学家之一。
                1:他最著名的贡献是发展了相对论，同时也为量子力学的发展做出了重要贡献。
                `,
			"analysis": StatementsAnswers{
				{
					SentenceIndex: 0,
					SimplerStatements: []string{
						"阿尔伯特·爱因斯坦是一位出生于德国的理论物理学家。",
						"阿尔伯特·爱因斯坦被广泛认为是有史以来最伟大和最有影响力的物理学家之一。",
					},
				},
				{
					SentenceIndex: 1,
					SimplerStatements: []string{
						"阿尔伯特·爱因斯坦最著名的贡献是发展了相对论。",
						"阿尔伯特·爱因斯坦也为量子力学的发展做出了重要贡献。",
					},
				},
			},
		},
	},
	InputKeys:  []string{"question", "answer", "sentences"},
	OutputKey:  "analysis",
	OutputType: OutputJSON,
	Language:   languageChinese,
}

// NLIStatementsZh 判断每条陈述能否由上下文直接推断
var NLIStatementsZh = &Prompt{
	Name:                    "nli_statements_ch",
	Instruction:             "您的任务是根据给定的上下文判断一系列陈述的忠实度。对于每一个陈述，如果能直接从上下文中推断出来，则返回 1；如果不能直接从上下文中推断出来，则返回 0。",
	OutputFormatInstruction: faithfulnessOutputInstructions,
	Examples: []Example{
		{
			"context": "张明是XYZ大学的学生。他正在攻读计算机科学学位。本学期他注册了几门课程，包括数据结构、算法和数据库管理。张明是一名勤奋的学生，花费大量时间学习和完成作业。他经常在图书馆工作到很晚来完成项目。",
			"statements": []string{
				"张明的专业是生物学。",
				"张明正在上人工智能课程。",
				"张明是一名专心致志的学生。",
				"张明有一份兼职工作。",
			},
			"answer": StatementFaithfulnessAnswers{
				{
					Statement: "张明的专业是生物学。",
					Reason:    "张明的专业被明确提到是计算机科学。没有信息表明他主修生物学。",
					Verdict:   0,
				},
				{
					Statement: "张明正在上人工智能课程。",
					Reason:    "上下文中提到了张明目前注册的课程，但没有提到人工智能课程。因此，无法推断出张明正在上人工智能课程。",
					Verdict:   0,
				},
				{
					Statement: "张明是一名专心致志的学生。",
					Reason:    "上下文表明他花费大量时间学习和完成作业。此外，他还经常在图书馆工作到很晚来完成项目，这表明他非常专心。",
					Verdict:   1,
				},
				{
					Statement: "张明有一份兼职工作。",
					Reason:    "上下文中没有提及张明有一份兼职工作。",
					Verdict:   0,
				},
			},
		},
		{
			"context":    "光合作用是一种由植物、藻类和某些细菌用来将光能转化为化学能的过程。",
			"statements": []string{"爱因斯坦是一位天才。"},
			"answer": StatementFaithfulnessAnswers{
				{
					Statement: "爱因斯坦是一位天才。",
					Reason:    "上下文和陈述无关。",
					Verdict:   0,
				},
			},
		},
	},
	InputKeys:  []string{"context", "statements"},
	OutputKey:  "answer",
	OutputType: OutputJSON,
	Language:   languageChinese,
}

// QuestionGenerationZh 根据答案反推问题，并标记答案是否含糊其辞
var QuestionGenerationZh = &Prompt{
	Name:                    "question_generation_ch",
	Instruction:             "为给定的答案生成一个问题，并判断答案是否含糊其辞。如果答案含糊其辞，则将非承诺性标记为 1；如果答案明确，则标记为 0。含糊其辞的答案是指回避、模糊或不确定的回答。例如，“我不知道”或“我不确定”就是含糊其辞的答案",
	OutputFormatInstruction: questionOutputInstructions,
	Examples: []Example{
		{
			"answer":  "爱因斯坦出生于德国。",
			"context": "爱因斯坦是一位出生于德国的理论物理学家，被广泛认为是有史以来最伟大和最有影响力的科学家之一。",
			"output": AnswerRelevanceClassification{
				Question:     "爱因斯坦出生在哪里？",
				Noncommittal: 0,
			},
		},
		{
			"answer":  "它可以根据周围环境的温度改变皮肤颜色。",
			"context": "最近的一项科学研究发现，在亚马逊雨林中有一种新物种的青蛙，它具有根据周围环境温度改变皮肤颜色的独特能力。",
			"output": AnswerRelevanceClassification{
				Question:     "新发现的青蛙物种有什么独特的能力？",
				Noncommittal: 0,
			},
		},
		{
			"answer":  "珠穆朗玛峰",
			"context": "地球上最高的山峰，从海平面测量，是一座位于喜马拉雅山脉的著名山峰。",
			"output": AnswerRelevanceClassification{
				Question:     "地球上最高的山峰是什么？",
				Noncommittal: 0,
			},
		},
		{
			"answer":  "我不知道2023年发明的智能手机的突破性功能，因为我对2022年之后的信息不了解。",
			"context": "2023年宣布了一项突破性的发明：一款电池续航一个月的智能手机，彻底改变了人们使用移动技术的方式。",
			"output": AnswerRelevanceClassification{
				Question:     "2023年发明的智能手机的突破性功能是什么？",
				Noncommittal: 1,
			},
		},
	},
	InputKeys:  []string{"answer", "context"},
	OutputKey:  "output",
	OutputType: OutputJSON,
	Language:   languageChinese,
}

// ContextPrecisionZh 判断单个上下文对得出答案是否有用
var ContextPrecisionZh = &Prompt{
	Name:                    "context_precision_cn",
	Instruction:             `给定问题、答案和上下文，验证上下文对于得出给定答案是否有用。有用则输出 "1"，无用则输出 "0"，以 JSON 格式呈现结果.`,
	OutputFormatInstruction: verificationOutputInstructions,
	Examples: []Example{
		{
			"question": "你能告诉我关于阿尔伯特·爱因斯坦的什么信息？",
			"context":  "阿尔伯特·爱因斯坦（1879年3月14日—1955年4月18日）是一位出生于德国的理论物理学家，被广泛认为是有史以来最伟大和最有影响力的科学家之一。他最著名的贡献是发展了相对论，同时在量子力学方面也做出了重要贡献，是20世纪初现代物理学革命重塑自然科学理解的核心人物之一。他的质能等价公式 E = mc² 被誉为“世界上最著名的方程”。他在1921年获得诺贝尔物理学奖，以表彰他在理论物理学方面的贡献，特别是他发现了光电效应定律，这是量子理论发展的关键一步。他的工作也因其对科学哲学的影响而闻名。1999年，英国《物理世界》杂志对全球130位顶尖物理学家进行了投票，爱因斯坦被评为有史以来最伟大的物理学家。他的智力成就和原创性使爱因斯坦成为天才的代名词。",
			"answer":   "阿尔伯特·爱因斯坦生于1879年3月14日，是一位出生于德国的理论物理学家，被广泛认为是有史以来最伟大和最有影响力的科学家之一。他在1921年获得了诺贝尔物理学奖，以表彰他在理论物理学方面的贡献。1905年，他发表了4篇论文。爱因斯坦于1895年移居瑞士。",
			"verification": ContextPrecisionVerification{
				Reason:  "提供的上下文确实有助于得出给定的答案。上下文中包含了关于阿尔伯特·爱因斯坦生活和贡献的关键信息，这些信息在答案中都有所体现。",
				Verdict: 1,
			},
		},
		{
			"question": "谁赢得了2020年国际板球理事会（ICC）世界杯？",
			"context":  "2022年国际板球理事会（ICC）男子T20世界杯于2022年10月16日至11月13日在澳大利亚举行，这是第八届该赛事。原计划于2020年举办，但因COVID-19疫情而推迟。英格兰队在决赛中以5个小门击败巴基斯坦队，赢得他们的第二个ICC男子T20世界杯冠军。",
			"answer":   "英格兰队。",
			"verification": ContextPrecisionVerification{
				Reason:  "上下文有用，因为它澄清了关于2020年ICC世界杯的情况，并指出英格兰队是实际上在2022年举行的、原定于2020年的赛事的胜者。",
				Verdict: 1,
			},
		},
		{
			"question": "世界上最高的山峰是什么？",
			"context":  "安第斯山脉是世界上最长的大陆山脉，位于南美洲。它跨越七个不同的国家，拥有西半球许多最高山峰。这个山脉以其多样的生态系统著称，包括高原的安第斯高原和亚马逊雨林。",
			"answer":   "珠穆朗玛峰。",
			"verification": ContextPrecisionVerification{
				Reason:  "提供的上下文讨论的是安第斯山脉，虽然壮观，但并未包含珠穆朗玛峰的相关信息，也没有直接关联到关于世界上最高山峰的问题。",
				Verdict: 0,
			},
		},
	},
	InputKeys:  []string{"question", "context", "answer"},
	OutputKey:  "verification",
	OutputType: OutputJSON,
	Language:   languageChinese,
}

// FixOutputFormat asks the model to repair a completion that did not parse.
var FixOutputFormat = &Prompt{
	Name:        "fix_output_format",
	Instruction: "Below, the Completion did not satisfy the constraints given in the Prompt.",
	InputKeys:   []string{"prompt", "completion"},
	OutputKey:   "fixed_completion",
	OutputType:  OutputText,
}
