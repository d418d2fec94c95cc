package database

import (
	"database/sql"
	"fmt"

	"carbontrack/internal/logger"
	"carbontrack/internal/models"
)

type seedOption struct {
	Key         string
	Text        string
	CarbonValue int
	Description string
}

type seedQuestion struct {
	ID         int
	CategoryID int
	Text       string
	HelpText   string
	Options    []seedOption
}

// Seed loads the questionnaire reference data: 5 categories, 24 single-select
// questions with 3-6 options each. It is a no-op when categories already
// exist, so it can run unconditionally at startup.
func Seed(db *sql.DB) error {
	count, err := CountCategories(db)
	if err != nil {
		return fmt.Errorf("failed to check seed state: %w", err)
	}
	if count > 0 {
		logger.Debug("Reference data already seeded")
		return nil
	}

	logger.Info("Seeding questionnaire reference data")

	for _, cat := range seedCategories {
		_, err := db.Exec(
			`INSERT INTO question_categories (id, name, description, icon, order_index) VALUES (?, ?, ?, ?, ?)`,
			cat.ID, cat.Name, cat.Description, cat.Icon, cat.OrderIndex,
		)
		if err != nil {
			return fmt.Errorf("failed to seed category %d: %w", cat.ID, err)
		}
	}

	for _, q := range seedQuestions {
		_, err := db.Exec(
			`INSERT INTO questions (id, category_id, question_text, question_type, help_text, is_active)
			 VALUES (?, ?, ?, 'single_select', ?, TRUE)`,
			q.ID, q.CategoryID, q.Text, q.HelpText,
		)
		if err != nil {
			return fmt.Errorf("failed to seed question %d: %w", q.ID, err)
		}

		for i, opt := range q.Options {
			_, err := db.Exec(
				`INSERT INTO question_options (question_id, option_key, option_text, carbon_value, order_index, description)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				q.ID, opt.Key, opt.Text, opt.CarbonValue, i+1, opt.Description,
			)
			if err != nil {
				return fmt.Errorf("failed to seed option %s of question %d: %w", opt.Key, q.ID, err)
			}
		}
	}

	logger.Info("Questionnaire reference data seeded",
		"categories", len(seedCategories),
		"questions", len(seedQuestions))

	return nil
}

var seedCategories = []models.QuestionCategory{
	{ID: 1, Name: "Enerji Tüketimi", Description: "Ev ve yaşam alanınızdaki enerji kullanım alışkanlıklarınız", Icon: "⚡", OrderIndex: 1},
	{ID: 2, Name: "Ulaşım Alışkanlıkları", Description: "Günlük ulaşım ve seyahat tercihleriniz", Icon: "🚗", OrderIndex: 2},
	{ID: 3, Name: "Beslenme Alışkanlıkları", Description: "Yeme içme ve gıda tüketim alışkanlıklarınız", Icon: "🍽️", OrderIndex: 3},
	{ID: 4, Name: "Dijital Alışkanlıklar", Description: "İnternet ve teknoloji kullanım alışkanlıklarınız", Icon: "💻", OrderIndex: 4},
	{ID: 5, Name: "Tüketim Alışkanlıkları", Description: "Alışveriş ve genel tüketim tercihleriniz", Icon: "🛒", OrderIndex: 5},
}

var seedQuestions = []seedQuestion{
	// Enerji Tüketimi
	{
		ID: 1, CategoryID: 1,
		Text:     "Hangi tip evde yaşıyorsunuz?",
		HelpText: "Yaşadığınız konut tipi enerji tüketiminizi doğrudan etkiler.",
		Options: []seedOption{
			{Key: "A", Text: "Stüdyo/1+0 apartman dairesi", CarbonValue: 800, Description: "Küçük yaşam alanı, düşük enerji tüketimi"},
			{Key: "B", Text: "2+1 veya 3+1 apartman dairesi", CarbonValue: 1200, Description: "Orta büyüklükte yaşam alanı"},
			{Key: "C", Text: "Büyük apartman dairesi (4+1 ve üzeri)", CarbonValue: 1800, Description: "Geniş yaşam alanı, yüksek enerji ihtiyacı"},
			{Key: "D", Text: "Müstakil ev (tek katlı)", CarbonValue: 2200, Description: "Bağımsız yapı, daha fazla ısıtma/soğutma"},
			{Key: "E", Text: "Müstakil ev (çok katlı/villa)", CarbonValue: 3500, Description: "En yüksek enerji tüketimi"},
		},
	},
	{
		ID: 2, CategoryID: 1,
		Text:     "Elektriğinizin kaynağı nedir?",
		HelpText: "Yenilenebilir enerji kullanımı karbon ayak izinizi önemli ölçüde azaltır.",
		Options: []seedOption{
			{Key: "A", Text: "%100 yenilenebilir enerji (güneş paneli, yeşil tarife)", CarbonValue: 50, Description: "En düşük karbon etkisi"},
			{Key: "B", Text: "Karma kaynak (kısmen yenilenebilir)", CarbonValue: 450, Description: "Orta düzey karbon etkisi"},
			{Key: "C", Text: "Şebeke elektriği (Türkiye ortalaması)", CarbonValue: 850, Description: "Standart karbon etkisi"},
			{Key: "D", Text: "Ağırlıklı fosil kaynaklı", CarbonValue: 1200, Description: "Yüksek karbon etkisi"},
		},
	},
	{
		ID: 3, CategoryID: 1,
		Text:     "Evinizdeki aydınlatma sistemi nasıl?",
		HelpText: "LED ampuller geleneksel ampullere göre %80 daha az enerji tüketir.",
		Options: []seedOption{
			{Key: "A", Text: "Tamamen LED aydınlatma", CarbonValue: 30, Description: "En verimli seçenek"},
			{Key: "B", Text: "Çoğunlukla LED, bazı floresan", CarbonValue: 60, Description: "Verimli"},
			{Key: "C", Text: "Karma (LED, floresan, akkor)", CarbonValue: 120, Description: "Orta verimlilik"},
			{Key: "D", Text: "Çoğunlukla floresan veya akkor", CarbonValue: 200, Description: "Düşük verimlilik"},
		},
	},
	{
		ID: 4, CategoryID: 1,
		Text:     "Isıtma için hangi sistemi kullanıyorsunuz?",
		HelpText: "Isıtma, ev enerji tüketiminin en büyük kalemlerinden biridir.",
		Options: []seedOption{
			{Key: "A", Text: "Isı pompası veya jeotermal", CarbonValue: 200, Description: "En verimli modern sistem"},
			{Key: "B", Text: "Doğalgaz kombi sistemi", CarbonValue: 1500, Description: "Yaygın ve orta verimli"},
			{Key: "C", Text: "Merkezi ısıtma sistemi", CarbonValue: 1800, Description: "Bina bazlı sistem"},
			{Key: "D", Text: "Elektrikli ısıtıcılar", CarbonValue: 2200, Description: "Yüksek elektrik tüketimi"},
			{Key: "E", Text: "Kömür veya odun sobası", CarbonValue: 3000, Description: "En yüksek karbon etkisi"},
		},
	},
	{
		ID: 5, CategoryID: 1,
		Text:     "Klima/soğutma kullanım alışkanlığınız nasıl?",
		HelpText: "Yaz aylarında klima kullanımı enerji tüketimini ciddi ölçüde artırır.",
		Options: []seedOption{
			{Key: "A", Text: "Klima kullanmıyorum", CarbonValue: 0, Description: "Doğal havalandırma"},
			{Key: "B", Text: "Sadece çok sıcak günlerde", CarbonValue: 150, Description: "Sınırlı kullanım"},
			{Key: "C", Text: "Yaz boyunca düzenli kullanım", CarbonValue: 400, Description: "Orta düzey kullanım"},
			{Key: "D", Text: "Yaz boyunca sürekli açık", CarbonValue: 800, Description: "Yoğun kullanım"},
			{Key: "E", Text: "Yıl boyu klima kullanımı", CarbonValue: 1200, Description: "En yüksek tüketim"},
		},
	},

	// Ulaşım Alışkanlıkları
	{
		ID: 6, CategoryID: 2,
		Text:     "Günlük ulaşımda ana aracınız nedir?",
		HelpText: "Ulaşım, kişisel karbon ayak izinin en büyük kalemlerinden biridir.",
		Options: []seedOption{
			{Key: "A", Text: "Yürüyüş veya bisiklet", CarbonValue: 0, Description: "Sıfır emisyon"},
			{Key: "B", Text: "Toplu taşıma (metro, otobüs, tramvay)", CarbonValue: 400, Description: "Düşük kişi başı emisyon"},
			{Key: "C", Text: "Elektrikli araç", CarbonValue: 600, Description: "Düşük emisyon"},
			{Key: "D", Text: "Hibrit araç", CarbonValue: 1200, Description: "Orta emisyon"},
			{Key: "E", Text: "Benzinli/Dizel sedan", CarbonValue: 2400, Description: "Yüksek emisyon"},
			{Key: "F", Text: "SUV veya pikap", CarbonValue: 3500, Description: "En yüksek emisyon"},
		},
	},
	{
		ID: 7, CategoryID: 2,
		Text:     "Haftalık ortalama kaç kilometre yol yapıyorsunuz?",
		HelpText: "Daha az sürüş, daha az karbon emisyonu demektir.",
		Options: []seedOption{
			{Key: "A", Text: "0-50 km (çok az)", CarbonValue: 100, Description: "Minimal sürüş"},
			{Key: "B", Text: "50-150 km (orta)", CarbonValue: 350, Description: "Günlük işe gidiş-geliş"},
			{Key: "C", Text: "150-300 km", CarbonValue: 700, Description: "Aktif sürücü"},
			{Key: "D", Text: "300-500 km", CarbonValue: 1100, Description: "Yoğun sürüş"},
			{Key: "E", Text: "500 km üzeri", CarbonValue: 1800, Description: "Profesyonel/uzun mesafe"},
		},
	},
	{
		ID: 8, CategoryID: 2,
		Text:     "Yurt içi uçak seyahati ne sıklıkla yaparsınız?",
		HelpText: "Uçak seyahati kişi başı en yüksek karbon emisyonuna sahip ulaşım şeklidir.",
		Options: []seedOption{
			{Key: "A", Text: "Hiç", CarbonValue: 0, Description: "Uçmuyorum"},
			{Key: "B", Text: "Yılda 1-2 kez", CarbonValue: 400, Description: "Nadir"},
			{Key: "C", Text: "Yılda 3-5 kez", CarbonValue: 1000, Description: "Orta sıklıkta"},
			{Key: "D", Text: "Yılda 6-10 kez", CarbonValue: 2000, Description: "Sık"},
			{Key: "E", Text: "Ayda 1 veya daha fazla", CarbonValue: 4000, Description: "Çok sık"},
		},
	},
	{
		ID: 9, CategoryID: 2,
		Text:     "Yurt dışı uçak seyahati ne sıklıkla yaparsınız?",
		HelpText: "Uzun mesafeli uçuşlar çok yüksek karbon emisyonuna neden olur.",
		Options: []seedOption{
			{Key: "A", Text: "Hiç", CarbonValue: 0, Description: "Uçmuyorum"},
			{Key: "B", Text: "Yılda 1 kez", CarbonValue: 1200, Description: "Yıllık tatil"},
			{Key: "C", Text: "Yılda 2-3 kez", CarbonValue: 3000, Description: "Düzenli seyahat"},
			{Key: "D", Text: "Yılda 4 veya daha fazla", CarbonValue: 6000, Description: "Sık seyahat"},
		},
	},
	{
		ID: 10, CategoryID: 2,
		Text:     "Araç paylaşımı veya car-sharing kullanıyor musunuz?",
		HelpText: "Araç paylaşımı trafiği ve emisyonları azaltmanın etkili bir yoludur.",
		Options: []seedOption{
			{Key: "A", Text: "Evet, düzenli olarak", CarbonValue: -200, Description: "Emisyon azaltımı"},
			{Key: "B", Text: "Bazen", CarbonValue: -100, Description: "Kısmi azaltım"},
			{Key: "C", Text: "Nadiren", CarbonValue: 0, Description: "Minimal etki"},
			{Key: "D", Text: "Hayır, hiç kullanmıyorum", CarbonValue: 100, Description: "Potansiyel kayıp"},
		},
	},
	{
		ID: 11, CategoryID: 2,
		Text:     "Tatil seyahatlerinizde hangi ulaşımı tercih edersiniz?",
		HelpText: "Tatil tercihleri yıllık karbon ayak izinizi önemli ölçüde etkiler.",
		Options: []seedOption{
			{Key: "A", Text: "Yerel tatil, araçsız", CarbonValue: 50, Description: "En düşük etki"},
			{Key: "B", Text: "Tren ile seyahat", CarbonValue: 150, Description: "Düşük emisyon"},
			{Key: "C", Text: "Özel araç ile", CarbonValue: 500, Description: "Orta emisyon"},
			{Key: "D", Text: "Kısa mesafe uçuş", CarbonValue: 800, Description: "Yüksek emisyon"},
			{Key: "E", Text: "Uzun mesafe uçuş + araç kiralama", CarbonValue: 2000, Description: "En yüksek"},
		},
	},

	// Beslenme Alışkanlıkları
	{
		ID: 12, CategoryID: 3,
		Text:     "Et tüketim alışkanlığınız nasıl?",
		HelpText: "Et üretimi, özellikle kırmızı et, yüksek sera gazı emisyonuna neden olur.",
		Options: []seedOption{
			{Key: "A", Text: "Vegan (hiç hayvansal ürün tüketmiyorum)", CarbonValue: 400, Description: "En düşük etki"},
			{Key: "B", Text: "Vejetaryen (et yemiyorum, süt/yumurta tüketiyorum)", CarbonValue: 700, Description: "Düşük etki"},
			{Key: "C", Text: "Fleksitaryen (haftada 1-2 kez et)", CarbonValue: 1200, Description: "Orta etki"},
			{Key: "D", Text: "Düzenli et tüketimi (haftada 3-4 kez)", CarbonValue: 1800, Description: "Yüksek etki"},
			{Key: "E", Text: "Yoğun et tüketimi (neredeyse her gün)", CarbonValue: 2500, Description: "Çok yüksek etki"},
		},
	},
	{
		ID: 13, CategoryID: 3,
		Text:     "Yerel ve mevsimlik ürün tüketimi hakkında ne söylersiniz?",
		HelpText: "Yerel ürünler taşıma emisyonlarını, mevsimlik ürünler sera üretim emisyonlarını azaltır.",
		Options: []seedOption{
			{Key: "A", Text: "Çoğunlukla yerel ve mevsimlik ürün tercih ediyorum", CarbonValue: 100, Description: "Düşük taşıma emisyonu"},
			{Key: "B", Text: "Mümkün olduğunca dikkat ediyorum", CarbonValue: 250, Description: "Bilinçli tüketici"},
			{Key: "C", Text: "Bazen dikkat ediyorum", CarbonValue: 400, Description: "Kısmi dikkat"},
			{Key: "D", Text: "Pek dikkat etmiyorum", CarbonValue: 600, Description: "Yüksek taşıma emisyonu"},
		},
	},
	{
		ID: 14, CategoryID: 3,
		Text:     "Gıda israfınız ne düzeyde?",
		HelpText: "Dünya genelinde üretilen gıdanın %30'u israf ediliyor ve bu ciddi emisyonlara neden oluyor.",
		Options: []seedOption{
			{Key: "A", Text: "Neredeyse hiç israf etmiyorum", CarbonValue: 50, Description: "Çok bilinçli"},
			{Key: "B", Text: "Çok az israf ediyorum", CarbonValue: 150, Description: "Bilinçli"},
			{Key: "C", Text: "Orta düzeyde israf", CarbonValue: 300, Description: "Ortalama"},
			{Key: "D", Text: "Sıkça gıda atığım oluyor", CarbonValue: 500, Description: "Yüksek israf"},
		},
	},
	{
		ID: 15, CategoryID: 3,
		Text:     "Dışarıda yemek yeme sıklığınız nedir?",
		HelpText: "Restoran yemekleri genellikle ev yemeklerinden daha yüksek karbon ayak izine sahiptir.",
		Options: []seedOption{
			{Key: "A", Text: "Nadiren (ayda 1-2 kez)", CarbonValue: 100, Description: "Ev yemekleri ağırlıklı"},
			{Key: "B", Text: "Haftada 1-2 kez", CarbonValue: 250, Description: "Dengeli"},
			{Key: "C", Text: "Haftada 3-4 kez", CarbonValue: 450, Description: "Sık dışarıda yemek"},
			{Key: "D", Text: "Neredeyse her gün", CarbonValue: 700, Description: "Çok sık"},
		},
	},

	// Dijital Alışkanlıklar
	{
		ID: 16, CategoryID: 4,
		Text:     "Günlük internet kullanım süreniz ne kadar?",
		HelpText: "İnternet altyapısı ve veri merkezleri önemli miktarda enerji tüketir.",
		Options: []seedOption{
			{Key: "A", Text: "1 saatten az", CarbonValue: 20, Description: "Minimal kullanım"},
			{Key: "B", Text: "1-3 saat", CarbonValue: 50, Description: "Orta kullanım"},
			{Key: "C", Text: "3-6 saat", CarbonValue: 100, Description: "Aktif kullanıcı"},
			{Key: "D", Text: "6-10 saat", CarbonValue: 180, Description: "Yoğun kullanıcı"},
			{Key: "E", Text: "10 saatten fazla", CarbonValue: 300, Description: "Süper kullanıcı"},
		},
	},
	{
		ID: 17, CategoryID: 4,
		Text:     "Video streaming (Netflix, YouTube vb.) kullanımınız ne kadar?",
		HelpText: "Video streaming, internet trafiğinin en büyük bölümünü oluşturur ve yüksek enerji tüketir.",
		Options: []seedOption{
			{Key: "A", Text: "Kullanmıyorum", CarbonValue: 0, Description: "Sıfır etki"},
			{Key: "B", Text: "Günde 1 saatten az", CarbonValue: 60, Description: "Hafif kullanım"},
			{Key: "C", Text: "Günde 1-3 saat", CarbonValue: 150, Description: "Orta kullanım"},
			{Key: "D", Text: "Günde 3-5 saat", CarbonValue: 280, Description: "Yoğun kullanım"},
			{Key: "E", Text: "Günde 5 saatten fazla", CarbonValue: 450, Description: "Çok yoğun"},
		},
	},
	{
		ID: 18, CategoryID: 4,
		Text:     "Elektronik cihazlarınızı ne sıklıkla yeniliyorsunuz?",
		HelpText: "Elektronik üretimi yoğun kaynak ve enerji gerektirir. Uzun ömürlü kullanım çevreye daha az zarar verir.",
		Options: []seedOption{
			{Key: "A", Text: "5 yıldan fazla kullanıyorum", CarbonValue: 100, Description: "Sürdürülebilir"},
			{Key: "B", Text: "3-5 yıl arası", CarbonValue: 250, Description: "Makul süre"},
			{Key: "C", Text: "2-3 yıl arası", CarbonValue: 450, Description: "Orta sıklıkta"},
			{Key: "D", Text: "1-2 yıl arası", CarbonValue: 700, Description: "Sık yenileme"},
			{Key: "E", Text: "Yılda bir veya daha sık", CarbonValue: 1000, Description: "Çok sık"},
		},
	},
	{
		ID: 19, CategoryID: 4,
		Text:     "Bulut depolama kullanımınız ne düzeyde?",
		HelpText: "Bulut servisleri sürekli çalışan veri merkezlerinde barındırılır ve enerji tüketir.",
		Options: []seedOption{
			{Key: "A", Text: "Kullanmıyorum, yerel depolama tercih ediyorum", CarbonValue: 20, Description: "Minimal bulut"},
			{Key: "B", Text: "Temel kullanım (5GB altı)", CarbonValue: 50, Description: "Hafif kullanım"},
			{Key: "C", Text: "Orta kullanım (5-50GB)", CarbonValue: 100, Description: "Orta depolama"},
			{Key: "D", Text: "Yoğun kullanım (50-200GB)", CarbonValue: 200, Description: "Yoğun depolama"},
			{Key: "E", Text: "Çok yoğun (200GB üzeri)", CarbonValue: 350, Description: "Ağır kullanıcı"},
		},
	},

	// Tüketim Alışkanlıkları
	{
		ID: 20, CategoryID: 5,
		Text:     "Giyim alışverişi alışkanlığınız nasıl?",
		HelpText: "Tekstil endüstrisi dünyanın en kirletici sektörlerinden biridir.",
		Options: []seedOption{
			{Key: "A", Text: "İkinci el/vintage tercih ediyorum", CarbonValue: 50, Description: "En sürdürülebilir"},
			{Key: "B", Text: "Yılda birkaç parça, kaliteli ve dayanıklı", CarbonValue: 150, Description: "Bilinçli tüketim"},
			{Key: "C", Text: "Mevsimlik alışveriş", CarbonValue: 350, Description: "Orta düzey"},
			{Key: "D", Text: "Sık alışveriş, trendleri takip", CarbonValue: 600, Description: "Yoğun tüketim"},
			{Key: "E", Text: "Fast fashion, çok sık alışveriş", CarbonValue: 1000, Description: "En yüksek etki"},
		},
	},
	{
		ID: 21, CategoryID: 5,
		Text:     "Geri dönüşüm uygulamalarınız nasıl?",
		HelpText: "Geri dönüşüm, ham madde ihtiyacını ve üretim emisyonlarını azaltır.",
		Options: []seedOption{
			{Key: "A", Text: "Titizlikle ayırıyorum (cam, plastik, kağıt, organik)", CarbonValue: -150, Description: "Karbon azaltımı"},
			{Key: "B", Text: "Çoğu malzemeyi geri dönüşüme atıyorum", CarbonValue: -80, Description: "İyi uygulama"},
			{Key: "C", Text: "Bazen geri dönüşüm yapıyorum", CarbonValue: 0, Description: "Kısmi uygulama"},
			{Key: "D", Text: "Nadiren veya hiç", CarbonValue: 150, Description: "Potansiyel kayıp"},
		},
	},
	{
		ID: 22, CategoryID: 5,
		Text:     "Su tasarrufu konusunda ne kadar dikkatlisiniz?",
		HelpText: "Su arıtma ve dağıtımı önemli enerji gerektirir.",
		Options: []seedOption{
			{Key: "A", Text: "Çok dikkatli, tasarruflu armatürler kullanıyorum", CarbonValue: 30, Description: "Çok tasarruflu"},
			{Key: "B", Text: "Genel olarak dikkat ediyorum", CarbonValue: 80, Description: "Tasarruflu"},
			{Key: "C", Text: "Orta düzeyde dikkat", CarbonValue: 150, Description: "Ortalama"},
			{Key: "D", Text: "Pek dikkat etmiyorum", CarbonValue: 250, Description: "Yüksek tüketim"},
		},
	},
	{
		ID: 23, CategoryID: 5,
		Text:     "Online alışveriş sıklığınız nedir?",
		HelpText: "Online alışveriş, kargo taşımacılığı ve ambalaj atığı nedeniyle karbon ayak izine katkıda bulunur.",
		Options: []seedOption{
			{Key: "A", Text: "Nadiren (ayda 1 kez veya daha az)", CarbonValue: 30, Description: "Minimal kargo"},
			{Key: "B", Text: "Ayda birkaç kez", CarbonValue: 100, Description: "Orta sıklıkta"},
			{Key: "C", Text: "Haftada 1-2 kez", CarbonValue: 250, Description: "Sık alışveriş"},
			{Key: "D", Text: "Neredeyse her gün", CarbonValue: 500, Description: "Çok sık"},
		},
	},
	{
		ID: 24, CategoryID: 5,
		Text:     "Tek kullanımlık ürün tüketiminiz nasıl?",
		HelpText: "Tek kullanımlık plastikler çevre kirliliği ve emisyonların önemli bir kaynağıdır.",
		Options: []seedOption{
			{Key: "A", Text: "Kaçınıyorum, yeniden kullanılabilir tercih ediyorum", CarbonValue: 30, Description: "Sürdürülebilir"},
			{Key: "B", Text: "Azaltmaya çalışıyorum", CarbonValue: 100, Description: "Bilinçli"},
			{Key: "C", Text: "Bazen kullanıyorum", CarbonValue: 200, Description: "Orta düzey"},
			{Key: "D", Text: "Sıkça kullanıyorum", CarbonValue: 350, Description: "Yüksek kullanım"},
		},
	},
}
